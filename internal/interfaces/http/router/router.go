package router

import (
	catalogapp "github.com/cosechaencope/backend/internal/application/catalog"
	orderingapp "github.com/cosechaencope/backend/internal/application/ordering"
	shoppingapp "github.com/cosechaencope/backend/internal/application/shopping"
	"github.com/cosechaencope/backend/internal/infrastructure/auth"
	"github.com/cosechaencope/backend/internal/infrastructure/config"
	"github.com/cosechaencope/backend/internal/infrastructure/logger"
	"github.com/cosechaencope/backend/internal/infrastructure/persistence"
	"github.com/cosechaencope/backend/internal/interfaces/http/handler"
	"github.com/cosechaencope/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies holds everything the router needs to wire the API
type Dependencies struct {
	Config             *config.Config
	Logger             *zap.Logger
	DB                 *persistence.Database
	JWTService         *auth.JWTService
	CartService        *shoppingapp.CartService
	CheckoutService    *orderingapp.CheckoutService
	FulfillmentService *orderingapp.FulfillmentService
	ItemService        *catalogapp.ItemService
}

// publicPaths are reachable without a token
var publicPaths = []string{
	"/health",
	"/ready",
	"/api/v1/items",
	"/api/v1/categories",
}

// New assembles the gin engine with all middleware and routes
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSFromHTTPConfig(deps.Config.HTTP)))

	systemHandler := handler.NewSystemHandler(deps.DB, deps.Config.App.Name, deps.Config.App.Env)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	cartHandler := handler.NewCartHandler(deps.CartService)
	orderHandler := handler.NewOrderHandler(deps.CheckoutService)
	fulfillmentHandler := handler.NewFulfillmentHandler(deps.FulfillmentService)
	itemHandler := handler.NewItemHandler(deps.ItemService)

	v1 := engine.Group("/api/v1")
	if deps.JWTService != nil {
		v1.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			JWTService: deps.JWTService,
			SkipPaths:  publicPaths,
			Logger:     deps.Logger,
		}))
	}

	cart := v1.Group("/cart")
	{
		cart.GET("", cartHandler.View)
		cart.DELETE("", cartHandler.Clear)
		cart.POST("/items", cartHandler.AddItem)
		cart.DELETE("/items/:itemId", cartHandler.DecrementItem)
		cart.PUT("/shipping", cartHandler.SetShipping)
	}

	orders := v1.Group("/orders")
	{
		orders.POST("", orderHandler.Checkout)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.GetByID)
		orders.POST("/:id/fulfillments", fulfillmentHandler.Generate)
	}

	v1.GET("/producers/:id/fulfillments", fulfillmentHandler.ListForProducer)
	v1.PATCH("/fulfillments/:id/status", fulfillmentHandler.UpdateStatus)

	items := v1.Group("/items")
	{
		items.POST("", itemHandler.Create)
		items.GET("", itemHandler.List)
		items.GET("/:id", itemHandler.GetByID)
		items.PUT("/:id", itemHandler.Update)
		items.PUT("/:id/stock", itemHandler.AdjustStock)
	}

	categories := v1.Group("/categories")
	{
		categories.POST("", itemHandler.CreateCategory)
		categories.GET("", itemHandler.ListCategories)
		categories.GET("/:id", itemHandler.GetCategory)
	}

	return engine
}
