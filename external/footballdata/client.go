package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/openfooty/statsync/internal/platform/logging"
	"github.com/openfooty/statsync/internal/platform/resilience"
	"github.com/openfooty/statsync/internal/usecase"
)

const defaultBaseURL = "https://api.football-data.org/v4"

var authHeaderRegex = regexp.MustCompile(`X-Auth-Token:\s*\S+`)
var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is the gateway to the authoritative fixtures/players API.
// It returns parsed records only; identity matching happens in the
// resolver, never here.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchPlayer returns the authoritative record for one player. First
// and last name may be absent upstream, in which case only the display
// name is populated and the caller splits it.
func (c *Client) FetchPlayer(ctx context.Context, externalID int64) (usecase.PlayerInfo, error) {
	if externalID <= 0 {
		return usecase.PlayerInfo{}, fmt.Errorf("player id must be greater than zero")
	}

	var envelope personEnvelope
	if _, err := c.doJSON(ctx, fmt.Sprintf("/persons/%d", externalID), nil, &envelope); err != nil {
		return usecase.PlayerInfo{}, fmt.Errorf("fetch person id=%d: %w", externalID, err)
	}

	return usecase.PlayerInfo{
		FirstName:   strings.TrimSpace(envelope.FirstName),
		LastName:    strings.TrimSpace(envelope.LastName),
		FullName:    strings.TrimSpace(envelope.Name),
		CountryName: strings.TrimSpace(envelope.Nationality),
	}, nil
}

// FetchFixtureLineup returns one fixture's participation payload plus
// the raw response bytes for capture.
func (c *Client) FetchFixtureLineup(ctx context.Context, fixtureID int64) (usecase.FixturePayload, []byte, error) {
	if fixtureID <= 0 {
		return usecase.FixturePayload{}, nil, fmt.Errorf("fixture id must be greater than zero")
	}

	var envelope matchEnvelope
	raw, err := c.doJSON(ctx, fmt.Sprintf("/matches/%d", fixtureID), nil, &envelope)
	if err != nil {
		return usecase.FixturePayload{}, nil, fmt.Errorf("fetch match id=%d: %w", fixtureID, err)
	}

	payload := usecase.FixturePayload{
		FixtureID: fixtureID,
		Round:     envelope.Matchday,
		Home:      mapTeamBlock(envelope.HomeTeam),
		Away:      mapTeamBlock(envelope.AwayTeam),
	}

	return payload, raw, nil
}

func mapTeamBlock(block matchTeamBlock) usecase.TeamLineup {
	lineup := usecase.TeamLineup{
		TeamID:           block.ID,
		Starters:         make([]int64, 0, len(block.Lineup)),
		Substitutes:      make([]int64, 0, len(block.Bench)),
		SubstitutionsOff: make(map[int64]int),
		SubstitutionsOn:  make(map[int64]int),
		Bookings:         make(map[int64]usecase.Booking),
	}

	for _, p := range block.Lineup {
		lineup.Starters = append(lineup.Starters, p.ID)
	}
	for _, p := range block.Bench {
		lineup.Substitutes = append(lineup.Substitutes, p.ID)
	}
	for _, sub := range block.Substitutions {
		if sub.PlayerOut.ID > 0 {
			lineup.SubstitutionsOff[sub.PlayerOut.ID] = sub.Minute
		}
		if sub.PlayerIn.ID > 0 {
			lineup.SubstitutionsOn[sub.PlayerIn.ID] = sub.Minute
		}
	}
	for _, booking := range block.Bookings {
		entry := lineup.Bookings[booking.Player.ID]
		switch strings.ToUpper(strings.TrimSpace(booking.Card)) {
		case "YELLOW", "YELLOW_CARD":
			entry.Yellow = true
		case "RED", "RED_CARD":
			entry.Red = true
		}
		lineup.Bookings[booking.Player.ID] = entry
	}

	return lineup
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: football-data is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errFootballDataTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("%w: decode football-data payload: %v", usecase.ErrUpstream, err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("X-Auth-Token", c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFootballDataTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: status=%d body=%s", errFootballDataTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("%w: football-data status=%d body=%s", usecase.ErrUpstream, resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt < c.maxRetries {
			c.logger.WarnContext(ctx, "football-data request retrying",
				"attempt", attempt+1,
				"error", lastErr,
			)
		}
	}

	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return authHeaderRegex.ReplaceAllString(value, "X-Auth-Token: REDACTED")
}
