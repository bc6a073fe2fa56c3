package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"matka-ledger-go/internal/api"
	"matka-ledger-go/internal/cache"
	"matka-ledger-go/internal/database"
	"matka-ledger-go/internal/market"
	"matka-ledger-go/internal/metrics"
	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/store"
	"matka-ledger-go/internal/wallet"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	Store         store.KeyValueStore
	Ledger        *wallet.Ledger
	Board         *market.Board
	LedgerService *api.LedgerService
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeStore opens the key-value backend selected by cfg.Backend
func InitializeStore(ctx context.Context, cfg *models.Config) (store.KeyValueStore, error) {
	switch cfg.Backend {
	case models.BackendSQLite, "":
		db, err := database.NewService(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return db, nil
	case models.BackendRedis:
		rdb, err := cache.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return rdb, nil
	case models.BackendMemory:
		zap.L().Warn("Using in-memory store; wallet state is lost on exit")
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	kv, err := InitializeStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Store initialized",
		zap.String("backend", cfg.Backend),
		zap.String("approval_mode", string(cfg.Wallet.ApprovalMode)))

	ledger := wallet.New(kv, wallet.Options{
		InitialBalance: cfg.Wallet.InitialBalance,
		ApprovalMode:   cfg.Wallet.ApprovalMode,
		InrPerUsd:      cfg.Wallet.InrPerUsd,
	})
	board := NewBoard(cfg.Market)

	return &Services{
		Store:         kv,
		Ledger:        ledger,
		Board:         board,
		LedgerService: api.NewLedgerService(kv, ledger, board, cfg),
	}, nil
}

// NewBoard builds the market board from the session settings
func NewBoard(cfg models.MarketConfig) *market.Board {
	return market.NewBoard(
		market.NewEvaluator(cfg.ResultGrace),
		market.NewClock(cfg.ClockOffset, cfg.Location),
	)
}

// StartMetrics registers collectors and serves them when a port is configured.
// The returned stop function is always safe to call.
func (cs *Services) StartMetrics(cfg models.MetricsConfig) func() {
	if cfg.Port == "" {
		return func() {}
	}
	metrics.Register()
	srv := metrics.StartMetricsServer(cfg.Port, cs.LedgerService.HealthCheck)
	return func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			zap.L().Warn("Failed to stop metrics server", zap.Error(err))
		}
	}
}

func (cs *Services) Close() {
	if cs.Store != nil {
		cs.Store.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
