package usecase

import (
	"errors"
	"testing"
)

func TestSplitFullName(t *testing.T) {
	t.Parallel()

	first, last, err := SplitFullName("Kevin De Bruyne")
	if err != nil {
		t.Fatalf("split full name: %v", err)
	}
	if first != "Kevin" || last != "De Bruyne" {
		t.Fatalf("unexpected split: first=%q last=%q", first, last)
	}
}

func TestSplitFullName_TrimsOuterAndSplitWhitespace(t *testing.T) {
	t.Parallel()

	first, last, err := SplitFullName("  Lionel   Messi ")
	if err != nil {
		t.Fatalf("split full name: %v", err)
	}
	if first != "Lionel" || last != "Messi" {
		t.Fatalf("unexpected split: first=%q last=%q", first, last)
	}
}

func TestSplitFullName_KeepsRemainderWhitespaceVerbatim(t *testing.T) {
	t.Parallel()

	first, last, err := SplitFullName("Heung-Min Son  Jr")
	if err != nil {
		t.Fatalf("split full name: %v", err)
	}
	if first != "Heung-Min" || last != "Son  Jr" {
		t.Fatalf("expected family name untouched after the split, got first=%q last=%q", first, last)
	}
}

func TestSplitFullName_SingleWordFails(t *testing.T) {
	t.Parallel()

	_, _, err := SplitFullName("Fred")
	if !errors.Is(err, ErrAmbiguousName) {
		t.Fatalf("expected ErrAmbiguousName, got %v", err)
	}
}

func TestSanitizeSourceName_BothPresentUnchanged(t *testing.T) {
	t.Parallel()

	first, last := SanitizeSourceName("Heung-Min", "Son", "Son Heung-Min")
	if first != "Heung-Min" || last != "Son" {
		t.Fatalf("expected names unchanged, got first=%q last=%q", first, last)
	}
}

func TestSanitizeSourceName_SplitsCombined(t *testing.T) {
	t.Parallel()

	first, last := SanitizeSourceName("", "", "Gabriel Jesus")
	if first != "Gabriel" || last != "Jesus" {
		t.Fatalf("unexpected split: first=%q last=%q", first, last)
	}
}

func TestSanitizeSourceName_SingleWordKeepsEmptyCounterpart(t *testing.T) {
	t.Parallel()

	first, last := SanitizeSourceName("", "", "Fabinho")
	if first != "Fabinho" || last != "" {
		t.Fatalf("expected one-word name ingestable, got first=%q last=%q", first, last)
	}
}
