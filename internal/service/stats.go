package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhishek622/coderstat/internal/metrics"
	"github.com/abhishek622/coderstat/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidHandles = errors.New("invalid handles")

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 100

	contestsCacheKey = "contests:upcoming"
)

type HandleStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PlatformHandle, error)
	Replace(ctx context.Context, userID uuid.UUID, handles []model.PlatformHandle) error
}

type StatsStore interface {
	Upsert(ctx context.Context, userID uuid.UUID, stats []model.PlatformStats) error
	Get(ctx context.Context, userID uuid.UUID, platform model.Platform) (model.PlatformStats, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PlatformStats, error)
	Leaderboard(ctx context.Context, platform model.Platform, limit int) ([]model.LeaderboardEntry, error)
}

type Fetcher interface {
	FetchStats(ctx context.Context, p model.Platform, username string) (model.PlatformStats, error)
	FetchAll(ctx context.Context, handles []model.PlatformHandle) []model.PlatformStats
	UpcomingContests(ctx context.Context) ([]model.Contest, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

type CacheTTL struct {
	Stats    time.Duration
	Contests time.Duration
}

// StatsService ties the fetchers to storage and the read cache.
type StatsService struct {
	handles HandleStore
	stats   StatsStore
	fetcher Fetcher
	cache   Cache
	ttl     CacheTTL
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewStatsService(handles HandleStore, stats StatsStore, fetcher Fetcher, cache Cache, ttl CacheTTL, m *metrics.Metrics, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		handles: handles,
		stats:   stats,
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

func (s *StatsService) Handles(ctx context.Context, userID uuid.UUID) ([]model.PlatformHandle, error) {
	return s.handles.ListByUser(ctx, userID)
}

// SaveHandles replaces the user's handles and refreshes every linked platform.
// Entries with an empty username unlink that platform.
func (s *StatsService) SaveHandles(ctx context.Context, userID uuid.UUID, req []model.HandleReq) (*model.RefreshResult, error) {
	handles := make([]model.PlatformHandle, 0, len(req))
	seen := make(map[model.Platform]bool, len(req))
	for _, r := range req {
		p, err := model.ParsePlatform(r.Platform)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHandles, err)
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: duplicate platform %s", ErrInvalidHandles, p)
		}
		seen[p] = true

		username := strings.TrimSpace(r.Username)
		if username == "" {
			continue
		}
		handles = append(handles, model.PlatformHandle{UserID: userID, Platform: p, Username: username})
	}

	if err := s.handles.Replace(ctx, userID, handles); err != nil {
		return nil, fmt.Errorf("save handles: %w", err)
	}
	return s.refresh(ctx, userID, handles)
}

// Refresh fetches every linked platform and persists the outcome.
func (s *StatsService) Refresh(ctx context.Context, userID uuid.UUID) (*model.RefreshResult, error) {
	handles, err := s.handles.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list handles: %w", err)
	}
	return s.refresh(ctx, userID, handles)
}

func (s *StatsService) refresh(ctx context.Context, userID uuid.UUID, handles []model.PlatformHandle) (*model.RefreshResult, error) {
	res := &model.RefreshResult{Stats: []model.PlatformStats{}}
	if len(handles) == 0 {
		return res, nil
	}

	res.Stats = s.fetcher.FetchAll(ctx, handles)
	for _, st := range res.Stats {
		if st.Failed() {
			res.Failed++
		}
	}

	if err := s.stats.Upsert(ctx, userID, res.Stats); err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}
	s.logger.Info("stats refreshed",
		zap.String("user_id", userID.String()),
		zap.Int("platforms", len(res.Stats)),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

func (s *StatsService) Stats(ctx context.Context, userID uuid.UUID) ([]model.PlatformStats, error) {
	return s.stats.ListByUser(ctx, userID)
}

// PlatformStats returns the stored record for one linked platform.
func (s *StatsService) PlatformStats(ctx context.Context, userID uuid.UUID, platform string) (model.PlatformStats, error) {
	p, err := model.ParsePlatform(platform)
	if err != nil {
		return model.PlatformStats{}, err
	}
	return s.stats.Get(ctx, userID, p)
}

// Lookup fetches one platform account live. Only successful records are
// cached so a transient failure is retried on the next request.
func (s *StatsService) Lookup(ctx context.Context, platform, username string) (model.PlatformStats, error) {
	p, err := model.ParsePlatform(platform)
	if err != nil {
		return model.PlatformStats{}, err
	}
	username = strings.TrimSpace(username)

	key := fmt.Sprintf("stats:%s:%s", strings.ToLower(string(p)), strings.ToLower(username))
	var cached model.PlatformStats
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
	}
	s.metrics.ObserveCache("stats", hit)
	if hit {
		return cached, nil
	}

	st, err := s.fetcher.FetchStats(ctx, p, username)
	if err != nil {
		return model.PlatformStats{}, err
	}
	if !st.Failed() {
		if err := s.cache.Set(ctx, key, st, s.ttl.Stats); err != nil {
			s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return st, nil
}

func (s *StatsService) UpcomingContests(ctx context.Context) ([]model.Contest, error) {
	var cached []model.Contest
	hit, err := s.cache.Get(ctx, contestsCacheKey, &cached)
	if err != nil {
		s.logger.Warn("contests cache read failed", zap.Error(err))
	}
	s.metrics.ObserveCache("contests", hit)
	if hit {
		return cached, nil
	}

	contests, err := s.fetcher.UpcomingContests(ctx)
	if err != nil {
		return nil, fmt.Errorf("upcoming contests: %w", err)
	}
	if err := s.cache.Set(ctx, contestsCacheKey, contests, s.ttl.Contests); err != nil {
		s.logger.Warn("contests cache write failed", zap.Error(err))
	}
	return contests, nil
}

// Leaderboard returns the ranking and the limit actually applied.
func (s *StatsService) Leaderboard(ctx context.Context, platform string, limit int) ([]model.LeaderboardEntry, int, error) {
	p, err := model.ParsePlatform(platform)
	if err != nil {
		return nil, 0, err
	}
	switch {
	case limit <= 0:
		limit = defaultLeaderboardLimit
	case limit > maxLeaderboardLimit:
		limit = maxLeaderboardLimit
	}
	entries, err := s.stats.Leaderboard(ctx, p, limit)
	if err != nil {
		return nil, 0, err
	}
	return entries, limit, nil
}
