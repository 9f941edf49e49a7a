package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomorais/storefront/internal/bootstrap"
	"github.com/cassiomorais/storefront/internal/controller"
	infraRedis "github.com/cassiomorais/storefront/internal/infrastructure/redis"
	mongoRepo "github.com/cassiomorais/storefront/internal/repository/mongodb"
	pgRepo "github.com/cassiomorais/storefront/internal/repository/postgres"
	"github.com/cassiomorais/storefront/internal/service"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "storefront-api", "storefront")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Repositories ---
	productRepo := mongoRepo.NewProductRepository(app.Catalog)
	if err := productRepo.CreateIndexes(ctx); err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to create catalog indexes")
	}
	orderRepo := pgRepo.NewOrderRepository(app.Pool)
	idempotencyStore := infraRedis.NewIdempotencyStore(app.Redis, app.Config.Checkout.IdempotencyTTL)

	// --- Services ---
	catalogService := service.NewCatalogService(productRepo)
	checkoutService := service.NewCheckoutService(
		productRepo, orderRepo, app.Processor,
		app.Config.Checkout.Currency, app.Logger, app.Metrics,
	)
	orderService := service.NewOrderService(
		productRepo, orderRepo, app.Processor, app.Logger, app.Metrics,
	)

	uploadController := controller.NewUploadController(
		app.Config.Uploads.Dir,
		app.Config.Uploads.BaseURL,
		app.Config.Uploads.MaxSizeBytes,
		app.Logger,
	)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		MongoClient:      app.Mongo,
		Pool:             app.Pool,
		RedisClient:      app.Redis,
		CatalogService:   catalogService,
		CheckoutService:  checkoutService,
		OrderService:     orderService,
		IdempotencyStore: idempotencyStore,
		UploadController: uploadController,
		Metrics:          app.Metrics,
		CORSConfig:       app.Config.Server.CORS,
		AuthConfig:       app.Config.Auth,
		UploadsDir:       app.Config.Uploads.Dir,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
