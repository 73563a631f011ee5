package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/itemvault/backend/internal/config"
	"github.com/itemvault/backend/internal/db"
	"github.com/itemvault/backend/internal/handler"
	"github.com/itemvault/backend/internal/service"
)

// @title Item Vault API
// @version 1.0.0
// @description Secure CRUD API with JWT authentication
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := &db.Postgres{Pool: pool}
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("schema bootstrap failed", "error", err)
		os.Exit(1)
	}

	codec, err := service.NewTokenCodec(cfg.Auth)
	if err != nil {
		logger.Error("token codec init failed", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(repo, codec)
	itemService := service.NewItemService(repo)
	adminService := service.NewAdminService(repo)

	authHandler := handler.NewAuthHandler(authService)
	itemHandler := handler.NewItemHandler(itemService)
	adminHandler := handler.NewAdminHandler(adminService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(cfg.App.AllowedOrigins, true))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	authed := router.Group("/", handler.AuthMiddleware(authService))
	authed.GET("/me", authHandler.Me)

	items := authed.Group("/items")
	items.POST("/", itemHandler.CreateItem)
	items.GET("/", itemHandler.ListItems)
	items.GET("/:id", itemHandler.GetItem)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)

	admin := authed.Group("/admin", handler.SuperuserMiddleware(authService))
	admin.GET("/users", adminHandler.ListUsers)

	logger.Info("starting server", "app", cfg.App.Name, "port", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
