package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/molnpaket/checkout/internal/api"
	v1 "github.com/molnpaket/checkout/internal/api/v1"
	"github.com/molnpaket/checkout/internal/config"
	"github.com/molnpaket/checkout/internal/domain/catalog"
	"github.com/molnpaket/checkout/internal/email"
	"github.com/molnpaket/checkout/internal/integration/stripe"
	"github.com/molnpaket/checkout/internal/logger"
	"github.com/molnpaket/checkout/internal/service"
	"github.com/molnpaket/checkout/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Load .env if present; real deployments configure through the environment
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Catalog
			catalog.NewCatalog,

			// Payment provider
			stripe.NewClient,
			stripe.NewGateway,

			// Email provider
			email.NewClient,
			email.NewService,

			// Services
			service.NewCheckoutService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	checkoutService service.CheckoutService,
	log *logger.Logger,
) api.Handlers {
	return api.Handlers{
		Checkout: v1.NewCheckoutHandler(checkoutService, log),
		Health:   v1.NewHealthHandler(log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
