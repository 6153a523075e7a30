package scrapesite

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/openfooty/statsync/internal/platform/logging"
	"github.com/openfooty/statsync/internal/usecase"
)

const (
	defaultBaseURL = "https://understat.com"

	// The search page carries its result set as a JSON literal inside
	// an inline script. Absence of the marker means the page layout
	// changed or the site served an error shell.
	payloadMarker = "JSON.parse('"
)

type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client scrapes the advanced-metrics site. The site has no API; the
// search results live as escaped JSON embedded in the page HTML.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	maxRetries int
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:    baseURL,
		timeout:    timeout,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Search runs a name query against the site's player search and
// returns the embedded result rows. Candidate order is the site's
// own relevance order and is preserved.
func (c *Client) Search(ctx context.Context, name string) ([]usecase.ScrapeCandidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("search name must not be empty")
	}

	body, err := c.fetchPage(ctx, "/search?query="+url.QueryEscape(name))
	if err != nil {
		return nil, fmt.Errorf("search scrape target name=%q: %w", name, err)
	}

	blob, err := extractEmbeddedJSON(body)
	if err != nil {
		c.logger.WarnContext(ctx, "scrape target page missing embedded payload", "name", name)
		return nil, fmt.Errorf("search scrape target name=%q: %w", name, err)
	}

	var rows []searchRow
	if err := sonic.Unmarshal(blob, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode scrape payload: %v", usecase.ErrUpstream, err)
	}

	candidates := make([]usecase.ScrapeCandidate, 0, len(rows))
	for _, row := range rows {
		id, convErr := strconv.ParseInt(row.ID, 10, 64)
		if convErr != nil {
			continue
		}
		candidates = append(candidates, usecase.ScrapeCandidate{
			ID:   id,
			Team: strings.TrimSpace(row.TeamTitle),
		})
	}
	return candidates, nil
}

type searchRow struct {
	ID        string `json:"id"`
	Name      string `json:"player_name"`
	TeamTitle string `json:"team_title"`
}

func (c *Client) fetchPage(ctx context.Context, path string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "text/html")

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := c.httpClient.DoTimeout(req, resp, c.timeout)
		if err != nil {
			lastErr = fmt.Errorf("send request: %w", err)
		} else if code := resp.StatusCode(); code >= 200 && code < 300 {
			body := append([]byte(nil), resp.Body()...)
			return body, nil
		} else if isRetryableStatus(code) {
			lastErr = fmt.Errorf("scrape target status=%d", code)
		} else {
			return nil, fmt.Errorf("%w: scrape target status=%d", usecase.ErrUpstream, resp.StatusCode())
		}

		if attempt < c.maxRetries {
			c.logger.WarnContext(ctx, "scrape target request retrying",
				"attempt", attempt+1,
				"error", lastErr,
			)
		}
	}

	return nil, fmt.Errorf("%w: %v", usecase.ErrUpstream, lastErr)
}

// extractEmbeddedJSON carves the first JSON.parse literal out of the
// page and resolves its \xHH and \\ escapes into plain JSON bytes.
func extractEmbeddedJSON(page []byte) ([]byte, error) {
	start := strings.Index(string(page), payloadMarker)
	if start < 0 {
		return nil, fmt.Errorf("%w: embedded payload marker not found", usecase.ErrUpstream)
	}
	rest := page[start+len(payloadMarker):]

	end := indexUnescapedQuote(rest)
	if end < 0 {
		return nil, fmt.Errorf("%w: embedded payload not terminated", usecase.ErrUpstream)
	}
	escaped := rest[:end]

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i := 0; i < len(escaped); i++ {
		ch := escaped[i]
		if ch != '\\' || i+1 >= len(escaped) {
			_ = buf.WriteByte(ch)
			continue
		}
		switch escaped[i+1] {
		case 'x':
			if i+3 >= len(escaped) {
				return nil, fmt.Errorf("%w: truncated hex escape in embedded payload", usecase.ErrUpstream)
			}
			value, err := strconv.ParseUint(string(escaped[i+2:i+4]), 16, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: bad hex escape in embedded payload", usecase.ErrUpstream)
			}
			_ = buf.WriteByte(byte(value))
			i += 3
		case '\\', '\'':
			_ = buf.WriteByte(escaped[i+1])
			i++
		default:
			_ = buf.WriteByte(ch)
		}
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

func indexUnescapedQuote(data []byte) int {
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' {
			i++
			continue
		}
		if data[i] == '\'' {
			return i
		}
	}
	return -1
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}
