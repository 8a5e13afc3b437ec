package main

import (
	"context"
	"log"
	"time"

	"eventmate/cmd"
	"eventmate/internal/data/repository"
	"eventmate/internal/wire"
	"eventmate/pkg/database"
	"eventmate/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to MongoDB
	mongo, err := database.InitMongo(config.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongo.Close(ctx); err != nil {
			logger.Error("Failed to disconnect database", zap.Error(err))
		}
	}()

	setupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureIndexes(setupCtx, mongo.DB); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}
	logger.Info("Database connected successfully", zap.String("database", config.Mongo.Database))

	// Redis is optional; without it revoked tokens live in memory
	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
	}

	// Initialize all repositories
	repos := repository.NewRepository(mongo.DB, rdb, config.Mongo.Transactions, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	if err := app.Service.Auth.EnsureAdmin(setupCtx, config.Admin.Username, config.Admin.Password); err != nil {
		logger.Fatal("Failed to bootstrap admin user", zap.Error(err))
	}

	if err := cmd.APIServer(app, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
