package routes

import (
	"net/http"

	"rtw_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the whole HTTP API under /api/v1. The auth middleware
// is built by the caller because it carries the JWT service and repositories.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, authMW gin.HandlerFunc) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api, authMW)
		appHandlers.Candidate.RegisterRoutes(api, authMW)
		appHandlers.Employer.RegisterRoutes(api, authMW)
		appHandlers.Notification.RegisterRoutes(api, authMW)
		appHandlers.Billing.RegisterRoutes(api, authMW)
		appHandlers.Engagement.RegisterRoutes(api, authMW)
		appHandlers.Media.RegisterRoutes(api, authMW)
	}
}
