package fantasyleague

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openfooty/statsync/internal/platform/logging"
	"github.com/openfooty/statsync/internal/platform/resilience"
	"github.com/openfooty/statsync/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 1,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      time.Second,
			HalfOpenMaxReq:   1,
		},
	})
}

func TestFetchBootstrap_MapsElements(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bootstrap-static/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"elements": [
				{"id": 371, "first_name": "Heung-Min", "second_name": "Son", "web_name": "Son"},
				{"id": 412, "first_name": "James", "second_name": "Maddison", "web_name": "Maddison"}
			]
		}`))
	})

	elements, err := client.FetchBootstrap(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	if elements[0].ID != 371 || elements[0].WebName != "Son" {
		t.Fatalf("unexpected first element: %+v", elements[0])
	}
	if elements[0].FirstName != "Heung-Min" || elements[0].SecondName != "Son" {
		t.Fatalf("unexpected name parts: %+v", elements[0])
	}
}

func TestFetchElementHistory_KeepsNullHomeScore(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/element-summary/371/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"history": [
				{"round": 1, "team_h_score": 2, "bonus": 3, "bps": 41, "total_points": 12, "transfers_in": 1000, "transfers_out": 50, "selected": 250000, "value": 95},
				{"round": 2, "team_h_score": null, "bonus": 0, "bps": 0, "total_points": 0, "transfers_in": 0, "transfers_out": 0, "selected": 251000, "value": 95}
			]
		}`))
	})

	entries, err := client.FetchElementHistory(t.Context(), 371)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(entries))
	}
	if entries[0].TeamHomeScore == nil || *entries[0].TeamHomeScore != 2 {
		t.Fatalf("expected settled home score, got %+v", entries[0].TeamHomeScore)
	}
	if entries[0].Value != 95 || entries[0].Selected != 250000 {
		t.Fatalf("unexpected round 1 values: %+v", entries[0])
	}
	if entries[1].TeamHomeScore != nil {
		t.Fatalf("expected in-progress round to keep null home score")
	}
}

func TestFetchElementHistory_ClientErrorIsUpstream(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Not found."}`))
	})

	_, err := client.FetchElementHistory(t.Context(), 9999)
	if !errors.Is(err, usecase.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestFetchBootstrap_RetriesServerError(t *testing.T) {
	t.Parallel()

	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"elements": []}`))
	})

	if _, err := client.FetchBootstrap(t.Context()); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}
