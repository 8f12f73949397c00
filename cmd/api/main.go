package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/adapters/cache"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/adapters/events"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/adapters/providers/completion"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/api/handlers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/api/middleware"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/api/routes"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/application/services"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/medline"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/redis"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/rxnorm"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/observability"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/config"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/secrets"
)

func main() {
	// Export Vault secrets into the environment before config reads it
	vaultCfg := secrets.VaultConfigFromEnv("")
	if vaultCfg.Enabled {
		vaultCtx, vaultCancel := context.WithTimeout(context.Background(), 10*time.Second)
		result, err := secrets.LoadVaultSecrets(vaultCtx, vaultCfg)
		vaultCancel()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load secrets from Vault")
		} else {
			log.Info().Int("loaded", result.Loaded).Int("skipped", result.Skipped).Msg("Vault secrets applied")
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize structured logging
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)

	log.Info().
		Str("service", cfg.OTEL.ServiceName).
		Str("version", cfg.OTEL.ServiceVersion).
		Str("env", cfg.Server.Environment).
		Msg("Starting interaction API server")

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			observability.EnableOTELLogBridge(cfg.OTEL.ServiceName)
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize the drug vocabulary client
	rxnormClient := rxnorm.NewClient(&cfg.RxNorm)

	// Initialize the curated interaction table
	predictor, err := services.NewInteractionPredictor(cfg.Paths.InteractionTablePath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load interaction table")
	}
	log.Info().Int("pairs", predictor.Size()).Msg("Interaction table loaded")

	// Initialize the monograph scraper
	medlineClient, err := medline.NewClient(&cfg.Medline, cfg.Paths.LookupTablePath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize monograph client")
	}
	medlineClient.SetSynonymSource(predictor.FoodSynonyms)

	// Initialize the AI fallback; nil provider disables the stage
	completionProvider, err := completion.NewCompletionProvider(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize AI provider; fallback stage disabled")
		completionProvider = nil
	}
	if completionProvider == nil {
		log.Warn().Msg("AI provider not configured; lookups fall back to the curated table")
	}

	// Initialize Redis client
	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Redis client")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info().Msg("Redis client initialized successfully")
		}
	}

	// Wrap the standardizer with the persistent name cache
	var standardizer providers.DrugStandardizer = rxnormClient
	nameCache, err := cache.NewFileNameCache(cfg.Paths.NameCachePath())
	if err != nil {
		log.Warn().Err(err).Msg("Name cache unavailable; standardizing without it")
	} else {
		standardizer = cache.NewCachedStandardizer(rxnormClient, nameCache)
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for the live lookup stream. Redis pub/sub reaches
	// every instance; the in-process bus covers single-instance deployments.
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Event bus initialized (redis)")
	} else {
		eventBus = events.NewMemoryEventBus()
		log.Info().Msg("Event bus initialized (in-process)")
	}

	// Initialize services
	flags := services.NewFeatureFlags()
	interactionService := services.NewInteractionService(
		standardizer,
		medlineClient,
		completionProvider,
		predictor,
		eventBus,
		metrics,
		flags,
		cfg.Gemini.SimplifyEnabled,
	)

	// Initialize handlers
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	sseHandler := handlers.NewSSEHandler(eventBus)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Info().Msg("Response cache middleware initialized")
	}

	// Readiness probes Redis when configured; a cacheless deployment is
	// ready as soon as the tables are loaded.
	var ready func(context.Context) error
	if redisClient != nil {
		ready = redisClient.Ping
	}

	// Set up router
	router := routes.NewRouter(
		interactionHandler,
		sseHandler,
		cacheMiddleware,
		metrics,
		cfg.Paths.WebDir,
		ready,
	)

	handler := router.SetupRoutes()

	// Create HTTP server. WriteTimeout stays zero because the lookup stream
	// holds its response open indefinitely.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("address", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	// Close event bus
	if err := eventBus.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing event bus")
	}

	log.Info().Msg("Server stopped")
}
