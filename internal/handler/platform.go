package handler

import (
	"github.com/abhishek622/coderstat/pkg/model"
	"github.com/abhishek622/coderstat/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPlatforms(c *gin.Context) {
	response.OK(c, gin.H{"platforms": model.Platforms})
}

// LookupStats fetches one account live. A failed fetch is reported as 502
// with the record's message.
func (h *Handler) LookupStats(c *gin.Context) {
	stats, err := h.Stats.Lookup(c.Request.Context(), c.Param("platform"), c.Param("username"))
	if err != nil {
		h.writeError(c, "stats lookup failed", err)
		return
	}
	if stats.Failed() {
		h.Logger.Sugar().Warnw("upstream fetch failed", "platform", stats.Platform, "username", stats.Username, "err", stats.Error)
		response.BadGateway(c, stats.Error)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) UpcomingContests(c *gin.Context) {
	contests, err := h.Stats.UpcomingContests(c.Request.Context())
	if err != nil {
		h.Logger.Sugar().Warnw("upcoming contests unavailable", "err", err)
		response.BadGateway(c, "no contest source available")
		return
	}
	response.OK(c, gin.H{"contests": contests})
}

func (h *Handler) Leaderboard(c *gin.Context) {
	var q model.LeaderboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entries, limit, err := h.Stats.Leaderboard(c.Request.Context(), c.Param("platform"), q.Limit)
	if err != nil {
		h.writeError(c, "leaderboard failed", err)
		return
	}
	response.OKWithMeta(c, gin.H{"entries": entries}, &response.Meta{Limit: limit, Total: len(entries)})
}
