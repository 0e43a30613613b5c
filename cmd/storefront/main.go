package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	carthttp "github.com/medwear/storefront/internal/cart/delivery/http"
	cartdomain "github.com/medwear/storefront/internal/cart/domain"
	cartrepo "github.com/medwear/storefront/internal/cart/repository"
	cataloghttp "github.com/medwear/storefront/internal/catalog/delivery/http"
	catalogrepo "github.com/medwear/storefront/internal/catalog/repository"
	"github.com/medwear/storefront/internal/middleware"
	"github.com/medwear/storefront/kafka"
	"github.com/medwear/storefront/pkg/config"
	"github.com/medwear/storefront/pkg/logger"
	"github.com/medwear/storefront/pkg/tracing"
)

const serviceName = "storefront"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(serviceName, "info", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(serviceName, cfg.LogLevel, cfg.IsDevelopment())

	// Tracing
	tp, err := tracing.InitTracer(serviceName, cfg.Jaeger.Endpoint)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Catalog, fixed for the process lifetime
	catalog, err := catalogrepo.NewMemoryCatalogFromSeed()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load product catalog")
	}
	tracedCatalog := catalogrepo.NewTracingCatalog(catalog)
	logger.Logger.Info().
		Int("products", catalog.Count(context.Background())).
		Msg("Catalog loaded")

	// Cart storage: Redis when configured, in-memory otherwise
	var redisClient *redis.Client
	var carts cartdomain.Repository = cartrepo.NewMemoryCartStore()
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Logger.Warn().Err(err).
				Str("addr", cfg.Redis.Addr).
				Msg("Redis unreachable, carts will not survive restarts")
			redisClient = nil
		} else {
			carts = cartrepo.NewRedisCartStore(redisClient, cfg.Redis.CartTTL)
			logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cart store ready")
		}
		cancel()
	} else {
		logger.Logger.Warn().Msg("REDIS_ADDR not set, carts will not survive restarts")
	}

	// Optional analytics publisher
	var events *kafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		events, err = kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unreachable, analytics disabled")
			events = nil
		} else {
			defer events.Close()
		}
	}

	// Handlers
	catalogHandler := cataloghttp.NewCatalogHandler(tracedCatalog, events, prometheus.DefaultRegisterer)
	catalogHandler.SetCatalogSize(catalog.Count(context.Background()))
	cartHandler := carthttp.NewCartHandler(carts, tracedCatalog, events, prometheus.DefaultRegisterer)

	// Router. The response cache only wraps the catalog routes: cart
	// responses are per-session and mutate, the catalog never does.
	router := mux.NewRouter()
	router.Use(middleware.RequestLogging)

	catalogRoutes := router.PathPrefix("/").Subrouter()
	if redisClient != nil {
		catalogRoutes.Use(middleware.ResponseCache(redisClient, cfg.Redis.CacheTTL))
	}
	catalogHandler.RegisterRoutes(catalogRoutes)
	catalogHandler.RegisterHealthCheck(router)
	cartHandler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())

	// The storefront SPA is served from another origin
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{carthttp.SessionHeader},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      otelhttp.NewHandler(corsHandler.Handler(router), "storefront-http"),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.HTTP.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}
