package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 4 << 20
	defaultBackoff      = 500 * time.Millisecond
)

type HTTPConfig struct {
	Timeout      time.Duration
	UserAgent    string
	Retries      int
	Backoff      time.Duration
	MaxBodyBytes int64
}

// HTTP is the request primitive shared by every platform client. It is safe
// for concurrent use.
type HTTP struct {
	client    *http.Client
	userAgent string
	retries   uint64
	backoff   time.Duration
	maxBody   int64
}

func NewHTTP(cfg HTTPConfig) *HTTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBackoff
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	return &HTTP{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		retries:   uint64(cfg.Retries),
		backoff:   cfg.Backoff,
		maxBody:   cfg.MaxBodyBytes,
	}
}

// Do sends the request produced by build and returns the response body.
// build is called once per attempt so request bodies can be replayed.
// Transport failures (network errors, 5xx, 429) are retried with exponential
// backoff; everything else is returned on the first attempt.
func (h *HTTP) Do(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = h.backoff
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, h.retries), ctx)

	var body []byte
	op := func() error {
		req, err := build(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", h.userAgent)
		}

		resp, err := h.client.Do(req)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrTransport, err)
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBody))
		if err != nil {
			return fmt.Errorf("%w: read body: %w", ErrTransport, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			serr := &StatusError{StatusCode: resp.StatusCode, URL: req.URL.Redacted(), Body: b}
			if serr.Retryable() {
				return serr
			}
			return backoff.Permanent(serr)
		}
		body = b
		return nil
	}

	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func (h *HTTP) Get(ctx context.Context, url string) ([]byte, error) {
	return h.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	})
}

// PostJSON marshals payload and posts it to url with the given extra headers.
func (h *HTTP) PostJSON(ctx context.Context, url string, payload any, headers map[string]string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return h.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	})
}
