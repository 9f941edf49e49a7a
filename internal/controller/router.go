package controller

import (
	"net/http"
	"time"

	"github.com/cassiomorais/storefront/internal/infrastructure/config"
	"github.com/cassiomorais/storefront/internal/infrastructure/observability"
	infraRedis "github.com/cassiomorais/storefront/internal/infrastructure/redis"
	customMW "github.com/cassiomorais/storefront/internal/middleware"
	"github.com/cassiomorais/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type RouterDeps struct {
	MongoClient      *mongo.Client
	Pool             *pgxpool.Pool
	RedisClient      *redis.Client
	CatalogService   *service.CatalogService
	CheckoutService  *service.CheckoutService
	OrderService     *service.OrderService
	IdempotencyStore *infraRedis.IdempotencyStore
	UploadController *UploadController
	Metrics          *observability.Metrics
	CORSConfig       config.CORSConfig
	AuthConfig       config.AuthConfig
	UploadsDir       string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.MongoClient, deps.Pool, deps.RedisClient)
	catalogH := NewCatalogController(deps.CatalogService)
	checkoutH := NewCheckoutController(deps.CatalogService, deps.CheckoutService, deps.OrderService)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	// Uploaded product images are public.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(deps.UploadsDir))))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(customMW.RequireAuth(deps.AuthConfig.JWTSecret))

		// One admin gate in front of every catalog mutation.
		admin := customMW.RequireAdmin(deps.AuthConfig.AdminEmail)
		idempotencyMW := customMW.Idempotency(deps.IdempotencyStore)

		// Catalog
		r.Get("/products", catalogH.List)
		r.Get("/products/{id}", catalogH.Get)
		r.With(admin).Post("/products", catalogH.Create)
		r.With(admin).Put("/products/{id}", catalogH.Update)
		r.With(admin).Patch("/products/{id}", catalogH.Update)

		// Checkout
		r.Get("/checkout/{id}", checkoutH.Summary)
		r.With(idempotencyMW).Post("/create-checkout-session", checkoutH.CreateSession)
		r.Get("/order-details", checkoutH.OrderDetails)

		// Order ledger
		r.Get("/orders/{id}", checkoutH.GetOrder)
		r.With(admin).Get("/orders", checkoutH.ListOrders)

		// Uploads
		r.With(admin).Post("/upload", deps.UploadController.Upload)
	})

	return r
}
