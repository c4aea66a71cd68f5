package fetcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/abhishek622/coderstat/internal/metrics"
	"github.com/abhishek622/coderstat/pkg/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Aggregator routes fetches to the client registered for each platform.
type Aggregator struct {
	clients     map[model.Platform]Client
	contests    []ContestClient
	logger      *zap.Logger
	metrics     *metrics.Metrics
	concurrency int
	now         func() time.Time
}

func NewAggregator(logger *zap.Logger, m *metrics.Metrics, concurrency int, clients ...Client) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Aggregator{
		clients:     make(map[model.Platform]Client, len(clients)),
		logger:      logger,
		metrics:     m,
		concurrency: concurrency,
		now:         time.Now,
	}
	for _, c := range clients {
		a.clients[c.Platform()] = c
	}
	return a
}

// NewDefault builds an aggregator with the four platform clients sharing one
// HTTP primitive, and LeetCode and Codeforces as contest sources.
func NewDefault(cfg HTTPConfig, concurrency int, logger *zap.Logger, m *metrics.Metrics) *Aggregator {
	opts := []Option{WithHTTP(NewHTTP(cfg)), WithLogger(logger)}
	leetcode := NewLeetCodeClient(opts...)
	codeforces := NewCodeforcesClient(opts...)

	a := NewAggregator(logger, m, concurrency,
		leetcode,
		codeforces,
		NewCodeChefClient(opts...),
		NewGeeksforGeeksClient(opts...),
	)
	a.AddContestSources(leetcode, codeforces)
	return a
}

func (a *Aggregator) AddContestSources(sources ...ContestClient) {
	a.contests = append(a.contests, sources...)
}

func (a *Aggregator) Client(p model.Platform) (Client, error) {
	c, ok := a.clients[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownPlatform, p)
	}
	return c, nil
}

// FetchStats fetches one platform. The error is non-nil only for an
// unsupported platform; fetch failures are reported inside the record.
func (a *Aggregator) FetchStats(ctx context.Context, p model.Platform, username string) (model.PlatformStats, error) {
	c, err := a.Client(p)
	if err != nil {
		return model.PlatformStats{}, err
	}

	start := time.Now()
	stats := c.FetchStats(ctx, username)
	a.metrics.ObserveFetch(string(p), stats.Failed(), time.Since(start))

	if stats.Failed() {
		a.logger.Warn("fetch_stats: platform fetch failed",
			zap.String("platform", string(p)),
			zap.String("username", username),
			zap.String("error", stats.Error),
		)
	} else {
		a.logger.Debug("fetch_stats: platform fetched",
			zap.String("platform", string(p)),
			zap.String("username", username),
			zap.String("solved", stats.SolvedCount),
			zap.Duration("took", time.Since(start)),
		)
	}
	return stats, nil
}

// FetchAll fetches every handle concurrently and returns one record per
// handle, in input order. A failing platform never affects the others.
func (a *Aggregator) FetchAll(ctx context.Context, handles []model.PlatformHandle) []model.PlatformStats {
	out := make([]model.PlatformStats, len(handles))

	var eg errgroup.Group
	if a.concurrency > 0 {
		eg.SetLimit(a.concurrency)
	}
	for i, h := range handles {
		eg.Go(func() error {
			stats, err := a.FetchStats(ctx, h.Platform, h.Username)
			if err != nil {
				stats = model.FailedStats(h.Platform, h.Username, err, a.now())
			}
			out[i] = stats
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

// UpcomingContests merges every contest source, dropping contests that have
// already started. Sources that fail are skipped; it errors only when all do.
func (a *Aggregator) UpcomingContests(ctx context.Context) ([]model.Contest, error) {
	if len(a.contests) == 0 {
		return []model.Contest{}, nil
	}

	var (
		mu   sync.Mutex
		all  = make([]model.Contest, 0, 16)
		errs []error
		eg   errgroup.Group
	)
	for _, src := range a.contests {
		eg.Go(func() error {
			contests, err := src.Upcoming(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Warn("upcoming_contests: source failed",
					zap.String("platform", string(src.Platform())),
					zap.Error(err),
				)
				errs = append(errs, err)
				return nil
			}
			all = append(all, contests...)
			return nil
		})
	}
	_ = eg.Wait()

	if len(errs) == len(a.contests) {
		return nil, errors.Join(errs...)
	}

	now := a.now()
	out := all[:0]
	for _, c := range all {
		if c.StartTime.After(now) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].Name < out[j].Name
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}
