package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"movies-backend/internal/shared/middleware"
	"movies-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		c.FilmHandler.RegisterRoutes(v1)
		c.GenreHandler.RegisterRoutes(v1)
		c.PersonHandler.RegisterRoutes(v1)
	}

	return router
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================

// healthCheckHandler reports 503 when the document store is down. A cache
// outage only degrades latency, so it is reported without failing.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		storeStatus := "ok"
		if err := appCtx.Store.Ping(ctx); err != nil {
			storeStatus = "error: " + err.Error()
			health["status"] = "down"
		}

		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = "error: " + err.Error()
			if health["status"] == "ok" {
				health["status"] = "degraded"
			}
		}

		services := gin.H{
			"search": storeStatus,
			"cache":  cacheStatus,
		}
		if appCtx.Breaker != nil {
			services["breaker"] = appCtx.Breaker.State()
		}
		health["services"] = services

		statusCode := http.StatusOK
		if storeStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
