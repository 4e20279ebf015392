// Package v1 wires the intent API routes.
package v1

import (
	"github.com/gin-gonic/gin"

	"staffdesk/internal/app"
	"staffdesk/internal/infrastructure/http/v1/handlers"
	"staffdesk/internal/infrastructure/http/v1/middleware"
	"staffdesk/pkg/logger"
)

// RouterConfig configures the router.
type RouterConfig struct {
	Session *app.Session
	Logger  *logger.Logger
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)

	h := handlers.NewSessionHandler(cfg.Session)

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.Health)

		api.GET("/users", h.ListUsers)
		api.GET("/jobs", h.ListJobs)
		api.GET("/organizations", h.ListOrganizations)

		session := api.Group("/session")
		{
			session.GET("", h.State)
			session.GET("/draft", h.Draft)
			session.POST("/navigate", h.Navigate)
			session.POST("/open", h.Open)
			session.POST("/name", h.NameChanged)
			session.POST("/select", h.FieldSelected)
			session.POST("/create", h.Create)
			session.POST("/update", h.Update)
			session.POST("/delete", h.Delete)
			session.POST("/load", h.Load)
			session.POST("/cancel", h.CancelEdit)
			session.POST("/refresh", h.Refresh)
		}
	}

	return r
}
