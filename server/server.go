package server

import (
	"context"
	"time"

	"github.com/Buddhisha1997/linkshoter/controllers"
	"github.com/Buddhisha1997/linkshoter/repository"
	"github.com/Buddhisha1997/linkshoter/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second
)

func NewRouter(db repository.Repository, logger *zap.Logger, baseURL string) *gin.Engine {
	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.SetHTMLTemplate(web.Templates())
	router.Use(withTimeout(defaultTimeout))

	health := new(controllers.HealthController)
	router.GET("/health", health.Status)

	links := controllers.LinksController{
		DB:      db,
		Log:     logger,
		BaseURL: baseURL,
	}

	router.GET("/", links.Home)
	router.POST("/", links.Create)
	router.GET("/all-links", links.AllLinks)
	router.GET("/click-details/:code", links.ClickDetails)
	// Registered last for readability only; gin matches static routes first.
	router.GET("/:code", links.Redirect)

	return router
}

// withTimeout deadlines the request context so downstream store calls give
// up instead of hanging forever.
func withTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
