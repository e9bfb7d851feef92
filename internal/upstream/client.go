// Package upstream is the shared JSON-over-HTTP client used by every
// provider adapter. It applies the per-call timeout, the outbound rate
// limit and error classification into domain errors. It never retries.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/metrics"
)

// Options configures a Client.
type Options struct {
	Provider  string
	BaseURL   string
	Timeout   time.Duration
	RPS       float64
	Burst     int
	UserAgent string
	HTTP      *http.Client
}

// Client talks to one upstream provider.
type Client struct {
	Provider  string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	HTTP      *http.Client
	Limiter   *rate.Limiter
}

// NewClient creates a client, filling in defaults for zero options.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RPS <= 0 {
		opts.RPS = DefaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.HTTP == nil {
		// Deadlines come from the per-call context
		opts.HTTP = &http.Client{}
	}

	return &Client{
		Provider:  opts.Provider,
		BaseURL:   strings.TrimRight(opts.BaseURL, "/"),
		Timeout:   opts.Timeout,
		UserAgent: opts.UserAgent,
		HTTP:      opts.HTTP,
		Limiter:   rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
	}
}

// GetJSON performs a GET and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.GetRaw(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf(ErrMsgDecodeFmt, c.Provider, errors.Join(domain.ErrMalformedResponse, err))
	}
	return nil
}

// GetRaw performs a GET and returns the raw body of a 2xx response.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.GetRawTimeout(ctx, path, query, c.Timeout)
}

// GetRawTimeout is GetRaw with an explicit per-call timeout.
func (c *Client) GetRawTimeout(ctx context.Context, path string, query url.Values, timeout time.Duration) ([]byte, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := c.do(ctx, path, query)

	metrics.UpstreamRequestDuration.WithLabelValues(c.Provider).Observe(time.Since(start).Seconds())
	metrics.UpstreamRequestsTotal.WithLabelValues(c.Provider, outcomeLabel(err)).Inc()

	if err != nil {
		log.Warn(LogMsgRequestFailed, "provider", c.Provider, "path", path, "error", err)
		return nil, err
	}
	log.Debug(LogMsgRequest, "provider", c.Provider, "path", path, "duration", time.Since(start))
	return body, nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgRateLimitFmt, c.Provider, classifyWait(ctx, err))
	}

	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBuildRequestFmt, c.Provider, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDoRequestFmt, c.Provider, path, classify(ctx, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		sentinel := domain.ErrUpstream
		if resp.StatusCode == http.StatusNotFound {
			sentinel = domain.ErrItemNotFound
		}
		return nil, fmt.Errorf(ErrMsgStatusFmt, c.Provider, path, resp.StatusCode, sentinel)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadBodyFmt, c.Provider, classify(ctx, err))
	}
	return body, nil
}

// classify maps transport errors onto domain sentinels.
func classify(ctx context.Context, err error) error {
	if domain.IsTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(domain.ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return errors.Join(domain.ErrUpstream, err)
}

// classifyWait maps a limiter wait failure. The limiter refuses early when no
// token can arrive before the deadline, so ctx.Err() is still nil then.
func classifyWait(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return err
	}
	if _, ok := ctx.Deadline(); ok {
		return errors.Join(domain.ErrTimeout, err)
	}
	return classify(ctx, err)
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case domain.IsTimeout(err):
		return metrics.OutcomeTimeout
	case errors.Is(err, domain.ErrItemNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
