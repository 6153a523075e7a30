package footballdata

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
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
		Token:      "secret-token",
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

func TestFetchPlayer_MapsPersonFields(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/persons/154" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Auth-Token"); got != "secret-token" {
			t.Errorf("expected auth token header, got %q", got)
		}
		_, _ = w.Write([]byte(`{
			"id": 154,
			"name": "Lionel Messi",
			"firstName": "Lionel",
			"lastName": "Messi",
			"nationality": "Argentina"
		}`))
	})

	info, err := client.FetchPlayer(t.Context(), 154)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FirstName != "Lionel" || info.LastName != "Messi" {
		t.Fatalf("unexpected name parts: %+v", info)
	}
	if info.FullName != "Lionel Messi" {
		t.Fatalf("expected full name, got %q", info.FullName)
	}
	if info.CountryName != "Argentina" {
		t.Fatalf("expected nationality, got %q", info.CountryName)
	}
}

func TestFetchFixtureLineup_MapsMinutesSourcesAndRawBytes(t *testing.T) {
	t.Parallel()

	body := `{
		"id": 8001,
		"matchday": 12,
		"homeTeam": {
			"id": 57,
			"name": "Arsenal FC",
			"lineup": [{"id": 101, "name": "A"}, {"id": 102, "name": "B"}],
			"bench": [{"id": 103, "name": "C"}],
			"substitutions": [{"minute": 63, "playerOut": {"id": 102}, "playerIn": {"id": 103}}],
			"bookings": [{"minute": 40, "player": {"id": 102}, "card": "YELLOW"}, {"minute": 88, "player": {"id": 102}, "card": "RED"}]
		},
		"awayTeam": {
			"id": 73,
			"name": "Tottenham Hotspur FC",
			"lineup": [{"id": 201, "name": "D"}],
			"bench": [],
			"substitutions": [],
			"bookings": []
		}
	}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matches/8001" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(body))
	})

	payload, raw, err := client.FetchFixtureLineup(t.Context(), 8001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.FixtureID != 8001 || payload.Round != 12 {
		t.Fatalf("unexpected fixture identity: %+v", payload)
	}
	if payload.Home.TeamID != 57 || len(payload.Home.Starters) != 2 {
		t.Fatalf("unexpected home block: %+v", payload.Home)
	}
	if got := payload.Home.SubstitutionsOff[102]; got != 63 {
		t.Fatalf("expected off minute 63, got %d", got)
	}
	if got := payload.Home.SubstitutionsOn[103]; got != 63 {
		t.Fatalf("expected on minute 63, got %d", got)
	}
	booking := payload.Home.Bookings[102]
	if !booking.Yellow || !booking.Red {
		t.Fatalf("expected yellow and red flags, got %+v", booking)
	}
	if payload.Away.TeamID != 73 || len(payload.Away.Starters) != 1 {
		t.Fatalf("unexpected away block: %+v", payload.Away)
	}
	if !strings.Contains(string(raw), `"matchday": 12`) {
		t.Fatalf("expected raw response bytes to be returned verbatim")
	}
}

func TestExecuteRequest_RetriesTransientStatusOnce(t *testing.T) {
	t.Parallel()

	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id": 1, "name": "X", "nationality": "England"}`))
	})

	if _, err := client.FetchPlayer(t.Context(), 1); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestExecuteRequest_NonRetryableStatusFailsUpstream(t *testing.T) {
	t.Parallel()

	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "resource not found"}`))
	})

	_, err := client.FetchPlayer(t.Context(), 9999)
	if !errors.Is(err, usecase.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected single attempt for 404, got %d", attempts)
	}
}

func TestSanitizeSensitiveText_RedactsToken(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText("request failed: X-Auth-Token: secret-token rejected", "secret-token")
	if strings.Contains(got, "secret-token") {
		t.Fatalf("token leaked into error text: %q", got)
	}
}
