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
	"github.com/Disidente87/vendor-wars-sub003/internal/chain"
	"github.com/Disidente87/vendor-wars-sub003/internal/config"
	"github.com/Disidente87/vendor-wars-sub003/internal/distributor"
	"github.com/Disidente87/vendor-wars-sub003/internal/logger"
	"github.com/Disidente87/vendor-wars-sub003/internal/messaging"
	"github.com/Disidente87/vendor-wars-sub003/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadDistributorConfig(*configFile, *envPath)
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
			"service": "distributor",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting reward distributor")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	// Connect to the chain node and open the server wallet
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to chain RPC", zap.Error(err), zap.String("rpc_url", cfg.Chain.RPCURL))
	}

	wallet, err := chain.NewWallet(ethClient, chain.Config{
		PrivateKeyHex:     cfg.Chain.WalletPrivateKey,
		ChainID:           cfg.Chain.ChainID,
		TokenContract:     cfg.Chain.TokenContract,
		GasLimit:          cfg.Chain.GasLimit,
		ConfirmationDepth: cfg.Chain.ConfirmationDepth,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open server wallet", zap.Error(err))
	}
	defer wallet.Close()
	logger.InfoCtx(ctx, "Server wallet ready",
		zap.String("address", wallet.Address()),
		zap.String("token_contract", cfg.Chain.TokenContract),
		zap.Int64("chain_id", cfg.Chain.ChainID),
	)

	// Connect the reward event subscriber
	subscriber, err := messaging.NewSubscriber(messaging.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		ConsumerName:   cfg.NATS.ConsumerName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: "vendor-wars-distributor",
		AckWait:        cfg.NATS.AckWait,
		MaxDeliver:     cfg.NATS.MaxDeliver,
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer subscriber.Close()

	worker := distributor.New(distributor.Config{
		SweepInterval:        cfg.Distributor.SweepInterval,
		StuckAfter:           cfg.Distributor.StuckAfter,
		MaxAttempts:          cfg.Distributor.MaxAttempts,
		BatchSize:            cfg.Distributor.BatchSize,
		WorkerPoolSize:       cfg.Distributor.WorkerPoolSize,
		WorkerQueueSize:      cfg.Distributor.WorkerQueueSize,
		ConfirmationWait:     cfg.Chain.ConfirmationWait,
		ConfirmationPolls:    cfg.Chain.ConfirmationPolls,
		RetryInitialInterval: cfg.Distributor.RetryInitialInterval,
		RetryMaxInterval:     cfg.Distributor.RetryMaxInterval,
	}, dataStore, wallet, subscriber, adapter.NewClock())

	errChan := make(chan error, 1)
	go func() {
		if err := worker.Start(ctx); err != nil {
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := worker.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Reward distributor stopped")
}
