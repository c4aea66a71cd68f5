package handler

import (
	"github.com/abhishek622/coderstat/pkg/model"
	"github.com/abhishek622/coderstat/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListHandles(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	handles, err := h.Stats.Handles(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, "list handles failed", err)
		return
	}
	response.OK(c, gin.H{"handles": handles})
}

// SaveHandles replaces the linked handles and returns the fresh stats.
func (h *Handler) SaveHandles(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.SaveHandlesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("save handles bad request", "err", err)
		response.ValidationError(c, err.Error())
		return
	}

	res, err := h.Stats.SaveHandles(c.Request.Context(), claims.UserID, req.Handles)
	if err != nil {
		h.writeError(c, "save handles failed", err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) MyStats(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	stats, err := h.Stats.Stats(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, "list stats failed", err)
		return
	}
	response.OK(c, gin.H{"stats": stats})
}

func (h *Handler) MyPlatformStats(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	stats, err := h.Stats.PlatformStats(c.Request.Context(), claims.UserID, c.Param("platform"))
	if err != nil {
		h.writeError(c, "get platform stats failed", err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) RefreshStats(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	res, err := h.Stats.Refresh(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, "refresh failed", err)
		return
	}
	response.OK(c, res)
}
