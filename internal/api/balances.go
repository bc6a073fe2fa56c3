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

	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/wallet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetBalance returns the current balance and its dollar equivalent
func (s *LedgerService) GetBalance(ctx context.Context) (int64, decimal.Decimal, error) {
	balance, err := s.ledger.Balance(ctx)
	if err != nil {
		zap.L().Error("Failed to get wallet balance", zap.Error(err))
		return 0, decimal.Zero, err
	}
	s.observeBalance(balance)
	return balance, s.ledger.ToUsd(balance), nil
}

// GetTransactionHistory returns a page of transactions, newest first
func (s *LedgerService) GetTransactionHistory(ctx context.Context, limit, offset int) []models.Transaction {
	return page(s.ledger.Transactions(ctx), limit, offset)
}

// GetWithdrawals returns a page of withdrawals, newest first
func (s *LedgerService) GetWithdrawals(ctx context.Context, limit, offset int) []models.Withdrawal {
	return page(s.ledger.Withdrawals(ctx), limit, offset)
}

// GetPendingWithdrawals returns withdrawals awaiting an operator
func (s *LedgerService) GetPendingWithdrawals(ctx context.Context) []models.Withdrawal {
	return s.ledger.PendingWithdrawals(ctx)
}

// Reconcile checks the stored balance against the transaction log
func (s *LedgerService) Reconcile(ctx context.Context) (wallet.Reconciliation, error) {
	return s.ledger.Reconcile(ctx)
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
