package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Disidente87/vendor-wars-sub003/internal/adapter"
	"github.com/Disidente87/vendor-wars-sub003/internal/api/middleware"
	"github.com/Disidente87/vendor-wars-sub003/internal/api/rest"
	"github.com/Disidente87/vendor-wars-sub003/internal/api/server"
	"github.com/Disidente87/vendor-wars-sub003/internal/config"
	"github.com/Disidente87/vendor-wars-sub003/internal/logger"
	"github.com/Disidente87/vendor-wars-sub003/internal/messaging"
	"github.com/Disidente87/vendor-wars-sub003/internal/store"
	"github.com/Disidente87/vendor-wars-sub003/internal/streak"
	"github.com/Disidente87/vendor-wars-sub003/internal/voting"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting vote API")

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid timezone", zap.Error(err), zap.String("timezone", cfg.Timezone))
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx); err != nil {
		// Degraded but functional: streak reads fall back to the ledger.
		logger.WarnCtx(ctx, "Redis unreachable at startup", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
	}

	// Connect reward event publisher
	publisher, err := messaging.NewPublisher(messaging.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: "vendor-wars-api",
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	// Build the reward schedule from config
	schedule, err := cfg.Reward.Schedule()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid reward schedule", zap.Error(err))
	}

	// Wire the voting service
	streaks := streak.NewStore(redisClient, dataStore, clock, location, cfg.Redis.TTL)
	scorer := voting.NewZoneScorer(dataStore)
	votes := voting.NewService(dataStore, streaks, scorer, publisher, clock, voting.Config{
		Schedule:       schedule,
		DailyVoteLimit: cfg.Reward.DailyVoteLimit,
		Location:       location,
	})

	handler := rest.NewHandler(votes, streaks, dataStore, clock, location)
	srv := server.New(server.Config{
		Port:         cfg.Server.Port,
		Debug:        cfg.Debug,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, handler)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Vote API stopped")
}
