/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"matka-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

func Load() (*models.Config, error) {
	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	redisPingTimeout, err := getEnvDuration("REDIS_PING_TIMEOUT", 2*time.Second)
	if err != nil {
		return nil, err
	}

	// Shifts the market clock away from wall time, e.g. -7h. Zero keeps wall-clock time.
	clockOffset, err := getEnvDuration("MATKA_CLOCK_OFFSET", 0)
	if err != nil {
		return nil, err
	}

	resultGrace, err := getEnvDuration("RESULT_GRACE_WINDOW", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	if resultGrace < 0 {
		return nil, fmt.Errorf("invalid duration for RESULT_GRACE_WINDOW: %s must not be negative", resultGrace)
	}

	location, err := getEnvLocation("MATKA_TIMEZONE", time.Local)
	if err != nil {
		return nil, err
	}

	inrPerUsd, err := getEnvDecimal("INR_PER_USD", decimal.NewFromInt(84))
	if err != nil {
		return nil, err
	}

	approval := models.ApprovalMode(getEnvString("WITHDRAWAL_APPROVAL", string(models.ApprovalAuto)))
	if approval != models.ApprovalAuto && approval != models.ApprovalManual {
		return nil, fmt.Errorf("invalid WITHDRAWAL_APPROVAL: %q (expected %q or %q)", approval, models.ApprovalAuto, models.ApprovalManual)
	}

	backend := getEnvString("STORE_BACKEND", models.BackendSQLite)
	switch backend {
	case models.BackendSQLite, models.BackendRedis, models.BackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND: %q", backend)
	}

	return &models.Config{
		Backend: backend,
		Database: models.DatabaseConfig{
			Path:            getEnvString("DATABASE_PATH", "wallet.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 4),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Redis: models.RedisConfig{
			Addr:        getEnvString("REDIS_ADDR", "localhost:6379"),
			Password:    getEnvString("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			KeyPrefix:   getEnvString("REDIS_KEY_PREFIX", ""),
			MaxRetries:  getEnvInt("REDIS_TX_RETRIES", 10),
			PingTimeout: redisPingTimeout,
		},
		Wallet: models.WalletConfig{
			InitialBalance: getEnvInt64("INITIAL_BALANCE", 10000),
			MinDeposit:     getEnvInt64("MIN_DEPOSIT", 100),
			MinWithdrawal:  getEnvInt64("MIN_WITHDRAWAL", 100),
			ApprovalMode:   approval,
			InrPerUsd:      inrPerUsd,
		},
		Market: models.MarketConfig{
			ClockOffset:   clockOffset,
			Location:      location,
			ResultGrace:   resultGrace,
			GamesFile:     getEnvString("GAMES_FILE", "games.yaml"),
			MinBet:        getEnvInt64("MIN_BET", 10),
			WatchSchedule: getEnvString("MARKET_WATCH_SCHEDULE", "* * * * *"),
		},
		Metrics: models.MetricsConfig{
			Port: getEnvString("METRICS_PORT", ""),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	if value := os.Getenv(key); value != "" {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid decimal for %s: %q (%w)", key, value, err)
		}
		if !d.IsPositive() {
			return decimal.Zero, fmt.Errorf("invalid decimal for %s: %q must be positive", key, value)
		}
		return d, nil
	}
	return defaultValue, nil
}

func getEnvLocation(key string, defaultValue *time.Location) (*time.Location, error) {
	if value := os.Getenv(key); value != "" {
		loc, err := time.LoadLocation(value)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone for %s: %q (%w)", key, value, err)
		}
		return loc, nil
	}
	return defaultValue, nil
}
