package handler

import (
	"context"
	"errors"

	"github.com/abhishek622/coderstat/internal/auth"
	"github.com/abhishek622/coderstat/internal/repository"
	"github.com/abhishek622/coderstat/internal/service"
	"github.com/abhishek622/coderstat/pkg/model"
	"github.com/abhishek622/coderstat/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=./handler.go -destination=./mocks/stats.mock.go -package=mocks StatsService

type StatsService interface {
	Handles(ctx context.Context, userID uuid.UUID) ([]model.PlatformHandle, error)
	SaveHandles(ctx context.Context, userID uuid.UUID, req []model.HandleReq) (*model.RefreshResult, error)
	Refresh(ctx context.Context, userID uuid.UUID) (*model.RefreshResult, error)
	Stats(ctx context.Context, userID uuid.UUID) ([]model.PlatformStats, error)
	PlatformStats(ctx context.Context, userID uuid.UUID, platform string) (model.PlatformStats, error)
	Lookup(ctx context.Context, platform, username string) (model.PlatformStats, error)
	UpcomingContests(ctx context.Context) ([]model.Contest, error)
	Leaderboard(ctx context.Context, platform string, limit int) ([]model.LeaderboardEntry, int, error)
}

type Handler struct {
	Logger *zap.Logger
	Stats  StatsService
}

// GetClaimsFromContext returns the claims set by the auth middleware, or nil.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}

func (h *Handler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownPlatform), errors.Is(err, service.ErrInvalidHandles):
		response.BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(c, "")
	default:
		h.Logger.Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c, "")
	}
}
