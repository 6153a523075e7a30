package fantasyleague

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/openfooty/statsync/internal/platform/logging"
	"github.com/openfooty/statsync/internal/platform/resilience"
	"github.com/openfooty/statsync/internal/usecase"
)

const defaultBaseURL = "https://fantasy.premierleague.com/api"

var errFantasyTransient = crerr.New("fantasy-league transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is the gateway to the public fantasy-league API. The API is
// unauthenticated; identity is matched downstream against canonical
// players, never against fantasy element IDs from other seasons.
type Client struct {
	httpClient     *http.Client
	baseURL        string
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
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchBootstrap returns every fantasy element for the current season.
func (c *Client) FetchBootstrap(ctx context.Context) ([]usecase.FantasyElement, error) {
	var envelope bootstrapEnvelope
	if err := c.doJSON(ctx, "/bootstrap-static/", &envelope); err != nil {
		return nil, fmt.Errorf("fetch bootstrap: %w", err)
	}

	elements := make([]usecase.FantasyElement, 0, len(envelope.Elements))
	for _, element := range envelope.Elements {
		elements = append(elements, usecase.FantasyElement{
			ID:         element.ID,
			FirstName:  strings.TrimSpace(element.FirstName),
			SecondName: strings.TrimSpace(element.SecondName),
			WebName:    strings.TrimSpace(element.WebName),
		})
	}
	return elements, nil
}

// FetchElementHistory returns one element's per-round history for the
// current season.
func (c *Client) FetchElementHistory(ctx context.Context, elementID int64) ([]usecase.FantasyGameweekEntry, error) {
	if elementID <= 0 {
		return nil, fmt.Errorf("element id must be greater than zero")
	}

	var envelope elementSummaryEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/element-summary/%d/", elementID), &envelope); err != nil {
		return nil, fmt.Errorf("fetch element history id=%d: %w", elementID, err)
	}

	entries := make([]usecase.FantasyGameweekEntry, 0, len(envelope.History))
	for _, row := range envelope.History {
		entries = append(entries, usecase.FantasyGameweekEntry{
			Round:         row.Round,
			TeamHomeScore: row.TeamHomeScore,
			Bonus:         row.Bonus,
			BPS:           row.BPS,
			TotalPoints:   row.TotalPoints,
			TransfersIn:   row.TransfersIn,
			TransfersOut:  row.TransfersOut,
			Selected:      row.Selected,
			Value:         row.Value,
		})
	}
	return entries, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fantasy-league circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fantasy-league api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errFantasyTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode fantasy-league payload: %v", usecase.ErrUpstream, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFantasyTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFantasyTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: status=%d body=%s", errFantasyTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("%w: fantasy-league status=%d body=%s", usecase.ErrUpstream, resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt < c.maxRetries {
			c.logger.WarnContext(ctx, "fantasy-league request retrying",
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
