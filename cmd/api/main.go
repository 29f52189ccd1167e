package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	"github.com/LocalServicesHQ/marketplace-api/internal/config"
	dbpkg "github.com/LocalServicesHQ/marketplace-api/internal/db"
	"github.com/LocalServicesHQ/marketplace-api/internal/middleware"
	"github.com/LocalServicesHQ/marketplace-api/internal/routes"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var store cache.Store = cache.Noop{}
	redisStore := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, 5*time.Minute)
	if err := redisStore.Ping(context.Background()); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
	} else {
		store = redisStore
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, store, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
