package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/xwstats/internal/domain"
)

const (
	defaultAPIURL      = "https://en.wikipedia.org/w/api.php"
	defaultPageviewURL = "https://wikimedia.org/api/rest_v1/metrics/pageviews/per-article/en.wikipedia/all-access/user"
	defaultUserAgent   = "xwstats/1.0 (crossword answer statistics)"
	defaultTimeout     = 5 * time.Second
	defaultRetryDelay  = 500 * time.Millisecond
	pageviewDateLayout = "20060102"
)

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	APIURL        string
	PageviewURL   string
	UserAgent     string
	Timeout       time.Duration
	RatePerSecond float64 // <= 0 disables client-side limiting
	Burst         int
}

// Client answers article questions against Wikipedia. Every error it returns
// wraps domain.ErrLookupFailed; a missing article is not an error.
type Client struct {
	apiURL      string
	pageviewURL string
	userAgent   string
	httpClient  *http.Client
	limiter     *rate.Limiter
	retryDelay  time.Duration
	now         func() time.Time
	log         *slog.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.APIURL == "" {
		opts.APIURL = defaultAPIURL
	}
	if opts.PageviewURL == "" {
		opts.PageviewURL = defaultPageviewURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}

	return &Client{
		apiURL:      strings.TrimRight(opts.APIURL, "/"),
		pageviewURL: strings.TrimRight(opts.PageviewURL, "/"),
		userAgent:   opts.UserAgent,
		httpClient:  &http.Client{Timeout: opts.Timeout},
		limiter:     limiter,
		retryDelay:  defaultRetryDelay,
		now:         time.Now,
		log:         logger.With("adapter", "wikipedia"),
	}
}

// NewClientWithURL creates a Client against custom endpoints (for testing).
func NewClientWithURL(apiURL, pageviewURL string, logger *slog.Logger) *Client {
	return NewClient(Options{APIURL: apiURL, PageviewURL: pageviewURL}, logger)
}

// Exists reports whether an article titled title exists.
func (c *Client) Exists(ctx context.Context, title string) (bool, error) {
	_, ok, err := c.query(ctx, title, false)
	return ok, err
}

// CanonicalTitle resolves title through normalisation and redirects. ok is
// false when no article exists.
func (c *Client) CanonicalTitle(ctx context.Context, title string) (string, bool, error) {
	return c.query(ctx, title, true)
}

func (c *Client) query(ctx context.Context, title string, redirects bool) (string, bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", false, nil
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("titles", title)
	if redirects {
		params.Set("redirects", "1")
	}

	c.log.DebugContext(ctx, "wikipedia query", slog.String("title", title))

	body, status, err := c.get(ctx, c.apiURL+"?"+params.Encode(), title)
	if err != nil {
		return "", false, err
	}
	if status != http.StatusOK {
		return "", false, fmt.Errorf("wikipedia: %w: unexpected status %d", domain.ErrLookupFailed, status)
	}

	var resp apiQueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false, fmt.Errorf("wikipedia: %w: decode json: %w", domain.ErrLookupFailed, err)
	}

	for key, page := range resp.Query.Pages {
		if page.exists(key) {
			return page.Title, true, nil
		}
	}
	return "", false, nil
}

// ViewCount returns the article's user pageviews summed over the last days
// days. An unknown article has zero views.
func (c *Client) ViewCount(ctx context.Context, title string, days int) (int, error) {
	title = strings.TrimSpace(title)
	if title == "" || days <= 0 {
		return 0, nil
	}

	end := c.now().UTC().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))
	reqURL := fmt.Sprintf("%s/%s/daily/%s00/%s00",
		c.pageviewURL,
		url.PathEscape(strings.ReplaceAll(title, " ", "_")),
		start.Format(pageviewDateLayout),
		end.Format(pageviewDateLayout),
	)

	body, status, err := c.get(ctx, reqURL, title)
	if err != nil {
		return 0, err
	}
	if status == http.StatusNotFound {
		return 0, nil
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("wikipedia: %w: unexpected status %d", domain.ErrLookupFailed, status)
	}

	var resp apiPageviewsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("wikipedia: %w: decode json: %w", domain.ErrLookupFailed, err)
	}

	total := 0
	for _, item := range resp.Items {
		total += item.Views
	}

	c.log.DebugContext(ctx, "wikipedia pageviews",
		slog.String("title", title),
		slog.Int("days", days),
		slog.Int("views", total),
	)
	return total, nil
}

// get performs a rate-limited GET with one retry on 5xx or network errors and
// returns the body and status code.
func (c *Client) get(ctx context.Context, reqURL, title string) ([]byte, int, error) {
	resp, err := c.do(ctx, reqURL)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if shouldRetry && ctx.Err() == nil {
		reason := "network error"
		if err == nil {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
			resp.Body.Close()
		}
		c.log.WarnContext(ctx, "wikipedia retry", slog.String("title", title), slog.String("reason", reason))

		select {
		case <-ctx.Done():
			return nil, 0, fmt.Errorf("wikipedia: %w: %w", domain.ErrLookupFailed, ctx.Err())
		case <-time.After(c.retryDelay):
		}
		resp, err = c.do(ctx, reqURL)
	}
	if err != nil {
		c.log.ErrorContext(ctx, "wikipedia request failed", slog.String("title", title), slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("wikipedia: %w: %w", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("wikipedia: %w: read body: %w", domain.ErrLookupFailed, err)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) do(ctx context.Context, reqURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}
