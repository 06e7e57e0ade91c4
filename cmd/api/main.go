package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"miner-sim/internal/api/handlers"
	"miner-sim/internal/api/middleware"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler())

	simulateHandler := handlers.NewSimulateHandler(logger)
	sweepHandler := handlers.NewSweepHandler(logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Run)
		api.POST("/sweep", sweepHandler.Run)

		api.GET("/policies", handlers.ListPolicyGroups)
		api.GET("/threshold", handlers.Threshold)
	}

	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
