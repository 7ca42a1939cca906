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

	"github.com/eventfinder-ai/backend/internal/adapters/cache"
	"github.com/eventfinder-ai/backend/internal/adapters/database"
	"github.com/eventfinder-ai/backend/internal/adapters/events"
	"github.com/eventfinder-ai/backend/internal/adapters/providers/calendar"
	"github.com/eventfinder-ai/backend/internal/adapters/providers/geolocation"
	searchprovider "github.com/eventfinder-ai/backend/internal/adapters/providers/search"
	"github.com/eventfinder-ai/backend/internal/adapters/search"
	"github.com/eventfinder-ai/backend/internal/api/handlers"
	"github.com/eventfinder-ai/backend/internal/api/routes"
	"github.com/eventfinder-ai/backend/internal/application/services"
	"github.com/eventfinder-ai/backend/internal/domain/providers"
	"github.com/eventfinder-ai/backend/internal/infrastructure/clients/postgres"
	"github.com/eventfinder-ai/backend/internal/infrastructure/clients/redis"
	"github.com/eventfinder-ai/backend/internal/infrastructure/clients/typesense"
	"github.com/eventfinder-ai/backend/internal/infrastructure/observability"
	"github.com/eventfinder-ai/backend/pkg/config"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	observability.InitLogger("eventfinder", env)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Postgres is optional: without it the workflow runs but analytics is off.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("postgres unavailable, workflow analytics disabled")
		pgClient = nil
	} else {
		defer pgClient.Close()
	}

	// Redis is optional: without it search responses are not cached and the
	// event bus is off.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching and event bus disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Typesense is optional: without it verified events are not indexed.
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("typesense unavailable, event index disabled")
		typesenseClient = nil
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
	}

	var eventIndex *search.TypesenseAdapter
	if typesenseClient != nil {
		eventIndex = search.NewTypesenseAdapter(typesenseClient)
		if err := eventIndex.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init typesense schema")
			eventIndex = nil
		}
	}

	// The search provider is required; a misconfigured provider is a startup
	// failure, not an empty-but-successful run.
	provider, err := searchprovider.NewSearchProvider(cfg.Search)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize search provider")
	}
	log.Info().Str("provider", provider.Name()).Msg("search provider initialized")

	var geoProvider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "google":
		if cfg.Geolocation.APIKey == "" {
			log.Warn().Msg("GEOLOCATION_API_KEY is not set, using mock geolocation provider")
			geoProvider = geolocation.NewMockGeolocationProvider()
		} else {
			geoProvider = geolocation.NewGoogleGeolocationProvider(cfg.Geolocation.APIKey, cacheProvider)
		}
	default:
		geoProvider = geolocation.NewMockGeolocationProvider()
	}

	var calendarProvider providers.CalendarProvider
	if cfg.Calendar.APIKey != "" && cfg.Calendar.GrantID != "" {
		calendarProvider = calendar.NewNylasAdapter(cfg.Calendar.APIKey, cfg.Calendar.APIURI, cfg.Calendar.GrantID)
	} else {
		log.Warn().Msg("nylas credentials not set, using mock calendar provider")
		calendarProvider = calendar.NewMockAdapter()
	}

	// Services
	discoveryService := services.NewDiscoveryService(provider, services.NewQueryFormattingService(), cfg.Search.ResultCount)
	if cacheProvider != nil {
		discoveryService.SetCache(cacheProvider)
	}

	auditService := services.NewAuditService()

	workflowService := services.NewWorkflowService(
		services.NewIntentService(cfg.Workflow, geoProvider),
		calendarProvider,
		discoveryService,
		auditService,
		services.NewRelaxationService(cfg.Workflow.MaxRadiusMiles),
		cfg.Calendar.Participants,
		cfg.Workflow.MaxRelaxationAttempts,
	)

	var analyticsService *services.WorkflowAnalyticsService
	if pgClient != nil {
		analyticsService = services.NewWorkflowAnalyticsService(database.NewWorkflowAnalyticsAdapter(pgClient))
		workflowService.SetAnalytics(analyticsService)
	}
	if eventIndex != nil {
		workflowService.SetEventIndex(eventIndex)
	}
	if eventBus != nil {
		workflowService.SetEventBus(eventBus)
	}

	// Handlers
	workflowHandler := handlers.NewWorkflowHandler(workflowService, analyticsService)
	verifyHandler := handlers.NewVerifyHandler(auditService)

	var suggestHandler *handlers.SuggestHandler
	if eventIndex != nil {
		suggestHandler = handlers.NewSuggestHandler(eventIndex)
	}

	router := routes.NewRouter(workflowHandler, verifyHandler, suggestHandler, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
