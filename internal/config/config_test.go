package config

import (
	"testing"
	"time"

	"matka-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend != models.BackendSQLite {
		t.Errorf("Expected backend %s, got %s", models.BackendSQLite, cfg.Backend)
	}
	if cfg.Wallet.InitialBalance != 10000 {
		t.Errorf("Expected initial balance 10000, got %d", cfg.Wallet.InitialBalance)
	}
	if cfg.Wallet.ApprovalMode != models.ApprovalAuto {
		t.Errorf("Expected approval mode auto, got %s", cfg.Wallet.ApprovalMode)
	}
	if !cfg.Wallet.InrPerUsd.Equal(decimal.NewFromInt(84)) {
		t.Errorf("Expected INR per USD 84, got %s", cfg.Wallet.InrPerUsd)
	}
	if cfg.Market.ClockOffset != 0 {
		t.Errorf("Expected zero clock offset, got %s", cfg.Market.ClockOffset)
	}
	if cfg.Market.ResultGrace != 15*time.Minute {
		t.Errorf("Expected 15m result grace, got %s", cfg.Market.ResultGrace)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MATKA_CLOCK_OFFSET", "-7h")
	t.Setenv("RESULT_GRACE_WINDOW", "20m")
	t.Setenv("WITHDRAWAL_APPROVAL", "manual")
	t.Setenv("INITIAL_BALANCE", "500")
	t.Setenv("MATKA_TIMEZONE", "UTC")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Market.ClockOffset != -7*time.Hour {
		t.Errorf("Expected -7h offset, got %s", cfg.Market.ClockOffset)
	}
	if cfg.Market.ResultGrace != 20*time.Minute {
		t.Errorf("Expected 20m grace, got %s", cfg.Market.ResultGrace)
	}
	if cfg.Wallet.ApprovalMode != models.ApprovalManual {
		t.Errorf("Expected manual approval, got %s", cfg.Wallet.ApprovalMode)
	}
	if cfg.Wallet.InitialBalance != 500 {
		t.Errorf("Expected initial balance 500, got %d", cfg.Wallet.InitialBalance)
	}
	if cfg.Market.Location != time.UTC {
		t.Errorf("Expected UTC location, got %v", cfg.Market.Location)
	}
	if cfg.Backend != models.BackendMemory {
		t.Errorf("Expected memory backend, got %s", cfg.Backend)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"MATKA_CLOCK_OFFSET", "seven hours"},
		{"RESULT_GRACE_WINDOW", "-5m"},
		{"WITHDRAWAL_APPROVAL", "sometimes"},
		{"INR_PER_USD", "0"},
		{"MATKA_TIMEZONE", "Mars/Olympus"},
		{"STORE_BACKEND", "postgres"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
