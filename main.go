package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/flowerstalk/storefront-gateway/checkout"
	"github.com/flowerstalk/storefront-gateway/controllers"
	"github.com/flowerstalk/storefront-gateway/initializers"
	"github.com/flowerstalk/storefront-gateway/routes"
	"github.com/flowerstalk/storefront-gateway/store"
	"github.com/flowerstalk/storefront-gateway/upstream"
)

func init() {
	initializers.LoadEnv()
}

func main() {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger := initializers.NewLogger(cfg)

	var cache *upstream.Cache
	if cfg.CacheEnabled {
		cache = upstream.NewCache(cfg.RedisAddr, cfg.CatalogCacheTTL)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("catalog cache enabled")
	}
	api := upstream.NewClient(cfg.APIBaseURL, cache, logger)

	carts := store.NewCartStore()
	guard := store.NewTransitionGuard()
	rules := checkout.Rules{RequireDeliveryNotes: cfg.RequireDeliveryNotes}

	shop := controllers.NewShopController(api, carts, rules, logger)
	admin := controllers.NewAdminController(api, guard, logger)
	rider := controllers.NewRiderController(api, guard, logger)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.ShopRoutes(server, shop)
	routes.AdminRoutes(server, admin, cfg.JWTSecret)
	routes.RiderRoutes(server, rider, cfg.JWTSecret)

	logger.Info().Str("port", cfg.Port).Str("api", cfg.APIBaseURL).Msg("storefront gateway listening")
	server.Run(":" + cfg.Port)
}
