package di

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"reserve-assistant/api"
	"reserve-assistant/api/hotpepper"
	"reserve-assistant/api/llm"
	"reserve-assistant/api/places"
	"reserve-assistant/config"
	"reserve-assistant/dao/redis"
	"reserve-assistant/db"
	"reserve-assistant/server"
	"reserve-assistant/server/handlers"
	services "reserve-assistant/service"
)

// Container holds all application dependencies.
type Container struct {
	Config                     *config.Config
	RedisClient                db.RedisClient
	RedisSessionDao            *redis.RedisSessionDAO
	SessionJanitor             *services.SessionJanitor
	HotPepperAPI               hotpepper.HotPepperAPI
	PlacesAPI                  places.PlacesAPI
	TextGenerator              llm.TextGenerator
	DirectoryPool              *services.Pool
	VenueCheckPool             *services.Pool
	EnrichmentPool             *services.Pool
	SearchService              *services.SearchService
	SearchHandler              *handlers.SearchHandler
	MuxRouter                  *mux.Router
	Router                     *server.Router
	ReserveAssistantHttpServer *server.ReserveAssistantHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger arbor.ILogger) (*Container, error) {
	logger.Info().Str("env", cfg.Env).Msg("[Container] Initializing container")

	redisClient, err := newRedisClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	sessionDao := redis.NewRedisSessionDAO(redisClient, time.Duration(cfg.Redis.SessionTTLMinutes)*time.Minute)

	// Redis expires keys itself; the in-memory store needs a sweep.
	var sessionJanitor *services.SessionJanitor
	if purger, ok := redisClient.(services.ExpiredPurger); ok {
		sessionJanitor = services.NewSessionJanitor(purger, logger)
	}

	// Outside prod, missing credentials fall back to the recorded responses in resources/.
	configErr := cfg.Validate()
	useMocks := cfg.Env != config.ENV_PROD && configErr != nil

	var hotpepperApi hotpepper.HotPepperAPI
	var placesApi places.PlacesAPI
	if useMocks {
		logger.Warn().Err(configErr).Msg("[Container] Using mock directory and places api")
		hotpepperMock, err := hotpepper.NewHotPepperApiClientMockFromJSON(config.GetResourcePath(config.SHOP_SEARCH_RESPONSE_RESOURCE))
		if err != nil {
			return nil, err
		}
		placesMock, err := places.NewPlacesApiClientMockFromJSON(config.GetResourcePath(config.PLACES_SEARCH_RESPONSE_RESOURCE))
		if err != nil {
			return nil, err
		}
		hotpepperApi, placesApi = hotpepperMock, placesMock
		configErr = nil
	} else {
		hotpepperHttp := api.NewHTTPClient(cfg.HotPepper.BaseURL).
			WithTimeout(time.Duration(cfg.HotPepper.TimeoutSeconds)*time.Second).
			WithRateLimit(float64(cfg.HotPepper.RequestsPerSecond), cfg.HotPepper.RequestsPerSecond)
		hotpepperApi = hotpepper.NewHotPepperApiClient(hotpepperHttp, cfg.HotPepper.APIKey)

		placesHttp := api.NewHTTPClient(cfg.Places.BaseURL).
			WithTimeout(time.Duration(cfg.Places.TimeoutSeconds)*time.Second).
			WithRateLimit(float64(cfg.Places.RequestsPerSecond), cfg.Places.RequestsPerSecond)
		placesApi = places.NewPlacesApiClient(placesHttp, cfg.Places.APIKey, cfg.Places.Language)

		if configErr != nil {
			logger.Error().Err(configErr).Msg("[Container] Searches will be refused until credentials are configured")
		}
	}

	generator, err := newTextGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Pools are shared by every request.
	directoryPool := services.NewPool(services.DIRECTORY_POOL, cfg.Search.DirectoryPoolSize, logger)
	venueCheckPool := services.NewPool(services.VENUE_CHECK_POOL, cfg.Search.VenueCheckPoolSize, logger)
	enrichmentPool := services.NewPool(services.ENRICHMENT_POOL, cfg.Search.EnrichmentPoolSize, logger)

	directory := services.NewDirectoryService(hotpepperApi, cfg.HotPepper.OnlineBookingOnly, logger)
	fetcher := services.NewMultiBudgetFetcher(directory, directoryPool, logger)
	resolver := services.NewOpenStatusResolver(generator, logger)
	loop := services.NewAccumulationLoop(fetcher, resolver, venueCheckPool, services.AccumulationLimits{
		Quota:    cfg.Search.Quota,
		PageSize: cfg.Search.PageSize,
		MaxLoops: cfg.Search.MaxLoops,
	}, logger)
	enricher := services.NewRatingEnricher(placesApi, enrichmentPool, logger)

	searchService := services.NewSearchService(loop, enricher, sessionDao, services.StartPolicy{
		Random: cfg.Search.RandomStart,
		Max:    cfg.Search.RandomStartMax,
	}, configErr, logger)

	searchHandler := handlers.NewSearchHandler(searchService, logger)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(searchHandler, muxRouter)

	httpServer := server.NewReserveAssistantHttpServer(router, muxRouter, cfg.Server.Addr,
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second, logger)

	return &Container{
		Config:                     cfg,
		RedisClient:                redisClient,
		RedisSessionDao:            sessionDao,
		SessionJanitor:             sessionJanitor,
		HotPepperAPI:               hotpepperApi,
		PlacesAPI:                  placesApi,
		TextGenerator:              generator,
		DirectoryPool:              directoryPool,
		VenueCheckPool:             venueCheckPool,
		EnrichmentPool:             enrichmentPool,
		SearchService:              searchService,
		SearchHandler:              searchHandler,
		MuxRouter:                  muxRouter,
		Router:                     router,
		ReserveAssistantHttpServer: httpServer,
	}, nil
}

// newRedisClient connects to Redis in prod and keeps sessions in memory otherwise.
func newRedisClient(ctx context.Context, cfg *config.Config, logger arbor.ILogger) (db.RedisClient, error) {
	if cfg.Env != config.ENV_PROD {
		logger.Info().Msg("[Container] Using in-memory session store")
		return db.NewMemoryRedisClient(ctx), nil
	}

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	redisClient := db.NewKVRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("[Container] Connected to Redis")
	return redisClient, nil
}

// newTextGenerator returns nil when no model credential is configured.
func newTextGenerator(ctx context.Context, cfg *config.Config, logger arbor.ILogger) (llm.TextGenerator, error) {
	if !cfg.ModelEnabled() {
		logger.Info().Msg("[Container] No model credential, model check disabled")
		return nil, nil
	}

	var limiter *rate.Limiter
	if cfg.Model.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Model.RequestsPerSecond), max(cfg.Model.Burst, 1))
	}
	timeout := time.Duration(cfg.Model.TimeoutSeconds) * time.Second

	switch cfg.Model.Provider {
	case config.MODEL_PROVIDER_OPENAI:
		g, err := llm.NewOpenAITextGenerator(cfg.Model.OpenAIAPIKey, cfg.Model.OpenAIModel, cfg.Model.OpenAIBaseURL, timeout, limiter, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai text generator: %w", err)
		}
		return g, nil
	case config.MODEL_PROVIDER_ANTHROPIC:
		g, err := llm.NewAnthropicTextGenerator(cfg.Model.AnthropicAPIKey, cfg.Model.AnthropicModel, cfg.Model.AnthropicBaseURL, timeout, limiter, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic text generator: %w", err)
		}
		return g, nil
	case config.MODEL_PROVIDER_GEMINI:
		g, err := llm.NewGeminiTextGenerator(ctx, cfg.Model.GeminiAPIKey, cfg.Model.GeminiModel, timeout, limiter, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini text generator: %w", err)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}
