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

package api

import (
	"context"
	"fmt"

	"matka-ledger-go/internal/market"
	"matka-ledger-go/internal/metrics"
	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/store"
	"matka-ledger-go/internal/wallet"

	"go.uber.org/zap"
)

// LedgerService is the entry point the wallet and play screens call. It
// applies the user-facing limits and turns ledger errors into results.
type LedgerService struct {
	kv     store.KeyValueStore
	ledger *wallet.Ledger
	board  *market.Board
	wallet models.WalletConfig
	minBet int64
}

func NewLedgerService(kv store.KeyValueStore, ledger *wallet.Ledger, board *market.Board, cfg *models.Config) *LedgerService {
	return &LedgerService{
		kv:     kv,
		ledger: ledger,
		board:  board,
		wallet: cfg.Wallet,
		minBet: cfg.Market.MinBet,
	}
}

// recordCounter is implemented by stores that can count their keys cheaply
type recordCounter interface {
	RecordCount(ctx context.Context) (int, error)
}

func (s *LedgerService) HealthCheck(ctx context.Context) error {
	if err := s.kv.Ping(ctx); err != nil {
		return fmt.Errorf("store health check failed: %w", err)
	}

	if rc, ok := s.kv.(recordCounter); ok {
		n, err := rc.RecordCount(ctx)
		if err != nil {
			return fmt.Errorf("store health check failed: %w", err)
		}
		zap.L().Debug("Store health check passed", zap.Int("records", n))
	}
	return nil
}

func (s *LedgerService) observeBalance(balance int64) {
	metrics.WalletBalance.Set(float64(balance))
}
