package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhishek622/coderstat/pkg/model"
	"go.uber.org/zap"
)

// Client fetches and normalizes one platform's stats. FetchStats never
// returns an error or panics: failures come back as an error record.
type Client interface {
	Platform() model.Platform
	FetchStats(ctx context.Context, username string) model.PlatformStats
}

// ContestClient lists a platform's upcoming contests.
type ContestClient interface {
	Platform() model.Platform
	Upcoming(ctx context.Context) ([]model.Contest, error)
}

type options struct {
	http       *HTTP
	baseURL    string
	profileURL string
	now        func() time.Time
	logger     *zap.Logger
}

type Option func(*options)

// WithHTTP shares one request primitive between clients.
func WithHTTP(h *HTTP) Option {
	return func(o *options) { o.http = h }
}

// WithBaseURL overrides the platform API endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithProfileURL overrides the public profile page prefix.
func WithProfileURL(u string) Option {
	return func(o *options) { o.profileURL = strings.TrimRight(u, "/") }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(baseURL, profileURL string, opts []Option) options {
	o := options{
		baseURL:    baseURL,
		profileURL: profileURL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.http == nil {
		o.http = NewHTTP(HTTPConfig{})
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

var errEmptyUsername = errors.New("username is required")

// guard is the failure boundary every client's FetchStats runs behind. It
// stamps the fetch time on the record and turns errors and panics into the
// uniform error record.
func guard(platform model.Platform, username string, now time.Time, fetch func() (model.PlatformStats, error)) (stats model.PlatformStats) {
	defer func() {
		if r := recover(); r != nil {
			stats = model.FailedStats(platform, username, fmt.Errorf("%s: unexpected failure: %v", strings.ToLower(string(platform)), r), now)
		}
	}()

	if strings.TrimSpace(username) == "" {
		return model.FailedStats(platform, username, errEmptyUsername, now)
	}

	s, err := fetch()
	if err != nil {
		return model.FailedStats(platform, username, err, now)
	}
	s.Platform = platform
	s.Username = username
	s.LastUpdated = now.UTC()
	s.Error = ""
	return s
}
