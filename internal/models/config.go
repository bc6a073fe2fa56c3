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

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store backends selectable through STORE_BACKEND
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config represents the application configuration
type Config struct {
	Backend  string
	Database DatabaseConfig
	Redis    RedisConfig
	Wallet   WalletConfig
	Market   MarketConfig
	Metrics  MetricsConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// RedisConfig holds the shared key-value store settings
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	KeyPrefix   string
	MaxRetries  int
	PingTimeout time.Duration
}

// WalletConfig holds ledger settings
type WalletConfig struct {
	InitialBalance int64
	MinDeposit     int64
	MinWithdrawal  int64
	ApprovalMode   ApprovalMode
	InrPerUsd      decimal.Decimal
}

// MarketConfig holds session evaluation settings
type MarketConfig struct {
	ClockOffset   time.Duration
	Location      *time.Location
	ResultGrace   time.Duration
	GamesFile     string
	MinBet        int64
	WatchSchedule string
}

// MetricsConfig holds the prometheus endpoint settings. An empty port disables it.
type MetricsConfig struct {
	Port string
}
