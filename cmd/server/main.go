package main

import (
	"log"
	"net/http"

	_ "shopwave/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shopwave/internal/auth"
	"shopwave/internal/cache"
	"shopwave/internal/catalog"
	"shopwave/internal/config"
	"shopwave/internal/db"
	"shopwave/internal/handler"
	"shopwave/internal/model"
	"shopwave/internal/password"
	"shopwave/internal/repository"
	"shopwave/internal/router"
	"shopwave/internal/service"
)

// @title Shopwave API
// @version 1.0
// @description Storefront backend with cookie-based session authentication and a product catalog proxy.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories and stores
	userRepo := repository.NewUserRepository(gormDB)
	sessionStore := auth.NewRedisSessionStore(cacheClient, cfg.SessionTTL)
	hasher := password.NewHasher()
	catalogClient := catalog.NewHTTPClient(cfg.CatalogAPIURL, cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionStore, hasher)
	checkoutService := service.NewCheckoutService()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SecureCookies)
	catalogHandler := handler.NewCatalogHandler(catalogClient)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)

	// Register routes
	router.Register(e, sessionStore, authHandler, catalogHandler, checkoutHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
