package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"painterlog/internal/auth"
	"painterlog/internal/cache"
	"painterlog/internal/config"
	"painterlog/internal/db"
	"painterlog/internal/handler"
	"painterlog/internal/model"
	"painterlog/internal/repository"
	"painterlog/internal/router"
	"painterlog/internal/service"
)

// @title Painter Timesheet API
// @version 1.0
// @description Daily timesheet API for painters: work hours, break deductions, and ordered location visits.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.DailyLocation{},
			&model.DailyEntry{},
			&model.Location{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Location{},
		&model.DailyEntry{},
		&model.DailyLocation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	locationService := service.NewLocationService(locationRepo, cacheClient)
	entryService := service.NewEntryService(entryRepo, locationRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	locationHandler := handler.NewLocationHandler(locationService)
	entryHandler := handler.NewEntryHandler(entryService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		locationHandler,
		entryHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
