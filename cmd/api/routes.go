package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	if !app.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(app.requestLogger())
	r.Use(app.requestMetrics())
	r.Use(app.cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/platforms", app.Handler.ListPlatforms)
		v1.GET("/platforms/:platform/users/:username", app.Handler.LookupStats)
		v1.GET("/contests", app.Handler.UpcomingContests)
		v1.GET("/leaderboard/:platform", app.Handler.Leaderboard)
	}

	protected := v1.Group("/me")
	protected.Use(app.AuthMiddleware())
	{
		protected.GET("/handles", app.Handler.ListHandles)
		protected.PUT("/handles", app.Handler.SaveHandles)
		protected.GET("/stats", app.Handler.MyStats)
		protected.GET("/stats/:platform", app.Handler.MyPlatformStats)
		protected.POST("/stats/refresh", app.Handler.RefreshStats)
	}

	return r
}
