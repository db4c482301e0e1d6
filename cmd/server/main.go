package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/cosechaencope/backend/internal/application/catalog"
	orderingapp "github.com/cosechaencope/backend/internal/application/ordering"
	shoppingapp "github.com/cosechaencope/backend/internal/application/shopping"
	"github.com/cosechaencope/backend/internal/infrastructure/auth"
	"github.com/cosechaencope/backend/internal/infrastructure/cache"
	"github.com/cosechaencope/backend/internal/infrastructure/config"
	"github.com/cosechaencope/backend/internal/infrastructure/event"
	"github.com/cosechaencope/backend/internal/infrastructure/logger"
	"github.com/cosechaencope/backend/internal/infrastructure/persistence"
	"github.com/cosechaencope/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Item cache: Redis when enabled, in-process otherwise
	var itemCache catalogapp.ItemCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		itemCache = cache.NewRedisItemCache(redisClient, cfg.Cache.ItemTTL, log)
	} else {
		memCache := cache.NewInMemoryItemCache(cfg.Cache.ItemTTL)
		defer func() { _ = memCache.Close() }()
		itemCache = memCache
	}

	eventBus := event.NewInMemoryEventBus(log)

	shoppingScope := persistence.NewGormShoppingTransactionScope(db.DB)
	orderingScope := persistence.NewGormOrderingTransactionScope(db.DB)

	cartService := shoppingapp.NewCartService(shoppingScope)
	cartService.SetEventPublisher(eventBus)

	checkoutService := orderingapp.NewCheckoutService(orderingScope)
	checkoutService.SetEventPublisher(eventBus)

	fulfillmentService := orderingapp.NewFulfillmentService(orderingScope)
	fulfillmentService.SetEventPublisher(eventBus)

	itemService := catalogapp.NewItemService(
		persistence.NewGormItemRepository(db.DB),
		persistence.NewGormCategoryRepository(db.DB),
	)
	itemService.SetCache(itemCache)

	engine := router.New(router.Dependencies{
		Config:             cfg,
		Logger:             log,
		DB:                 db,
		JWTService:         auth.NewJWTService(cfg.JWT),
		CartService:        cartService,
		CheckoutService:    checkoutService,
		FulfillmentService: fulfillmentService,
		ItemService:        itemService,
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("addr", server.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
