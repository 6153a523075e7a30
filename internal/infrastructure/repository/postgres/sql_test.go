package postgres

import (
	"database/sql"
	"errors"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected sql.ErrNoRows to be treated as not found")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatal("expected other errors to pass through")
	}
}

func TestInt64PtrNullRoundTrip(t *testing.T) {
	t.Parallel()

	if got := int64PtrToNull(nil); got.Valid {
		t.Fatalf("expected invalid null for nil pointer, got %+v", got)
	}

	v := int64(453)
	null := int64PtrToNull(&v)
	if !null.Valid || null.Int64 != 453 {
		t.Fatalf("unexpected null value: %+v", null)
	}

	back := nullToInt64Ptr(null)
	if back == nil || *back != 453 {
		t.Fatalf("unexpected round trip value: %v", back)
	}
	if nullToInt64Ptr(sql.NullInt64{}) != nil {
		t.Fatal("expected nil pointer for invalid null")
	}
}
