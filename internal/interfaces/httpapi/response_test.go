package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/openfooty/statsync/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid input", fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{"not found", usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"dependency unavailable", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"missing field", fmt.Errorf("%w: country", usecase.ErrMissingRequiredField), http.StatusUnprocessableEntity, "unresolvableRecord"},
		{"unknown country", usecase.ErrUnknownCountry, http.StatusUnprocessableEntity, "unresolvableRecord"},
		{"ambiguous match", usecase.ErrAmbiguousMatch, http.StatusConflict, "ambiguousMatch"},
		{"no match", usecase.ErrNoMatchFound, http.StatusNotFound, "noMatchFound"},
		{"upstream", usecase.ErrUpstream, http.StatusBadGateway, "upstreamError"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mapped := mapError(context.Background(), tc.err)
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, mapped.HTTPStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("expected reason %q, got %q", tc.wantReason, mapped.Reason)
			}
		})
	}
}
