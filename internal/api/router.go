package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	v1 "github.com/molnpaket/checkout/internal/api/v1"
	"github.com/molnpaket/checkout/internal/config"
	"github.com/molnpaket/checkout/internal/logger"
	"github.com/molnpaket/checkout/internal/rest/middleware"
)

type Handlers struct {
	Checkout *v1.CheckoutHandler
	Health   *v1.HealthHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.RequestLogger(log),
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/check-coupon", handlers.Checkout.CheckCoupon)
		apiGroup.POST("/subscribe", handlers.Checkout.Subscribe)
	}

	// Companion front end: the root path serves the index document and
	// unmatched paths fall through to static assets.
	if cfg.Checkout.StaticDir != "" {
		registerStatic(router, cfg.Checkout.StaticDir)
	}

	return router
}

func registerStatic(router *gin.Engine, staticDir string) {
	router.StaticFile("/", filepath.Join(staticDir, "index.html"))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		// Clean the path so the file server cannot escape the static dir
		rel := strings.TrimPrefix(filepath.Clean("/"+c.Request.URL.Path), "/")
		c.File(filepath.Join(staticDir, rel))
	})
}
