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
	"errors"
	"fmt"

	"matka-ledger-go/internal/metrics"
	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/wallet"

	"go.uber.org/zap"
)

// AddMoneyDescription labels credits made through the add-money flow
const AddMoneyDescription = "Money Added"

// AddMoney credits the wallet after checking the minimum deposit
func (s *LedgerService) AddMoney(ctx context.Context, amount int64) (*models.WalletResult, error) {
	zap.L().Info("Processing add money request", zap.Int64("amount", amount))

	if amount <= 0 {
		metrics.WalletOperations.WithLabelValues("credit", metrics.OutcomeRejected).Inc()
		return &models.WalletResult{
			Success: false,
			Error:   wallet.ErrInvalidAmount.Error(),
		}, nil
	}
	if amount < s.wallet.MinDeposit {
		metrics.WalletOperations.WithLabelValues("credit", metrics.OutcomeRejected).Inc()
		zap.L().Warn("Deposit below minimum",
			zap.Int64("amount", amount),
			zap.Int64("min_deposit", s.wallet.MinDeposit))
		return &models.WalletResult{
			Success: false,
			Error:   fmt.Sprintf("minimum deposit is %d", s.wallet.MinDeposit),
		}, nil
	}

	tx, err := s.ledger.Credit(ctx, amount, AddMoneyDescription)
	if err != nil {
		metrics.WalletOperations.WithLabelValues("credit", metrics.OutcomeError).Inc()
		zap.L().Error("Deposit processing failed", zap.Int64("amount", amount), zap.Error(err))
		if errors.Is(err, wallet.ErrInvalidAmount) {
			return &models.WalletResult{Success: false, Error: err.Error()}, nil
		}
		return nil, err
	}

	newBalance, err := s.ledger.Balance(ctx)
	if err != nil {
		zap.L().Error("Failed to get updated balance", zap.Error(err))
		return nil, err
	}

	metrics.WalletOperations.WithLabelValues("credit", metrics.OutcomeOk).Inc()
	metrics.WalletAmount.WithLabelValues("credit").Add(float64(amount))
	s.observeBalance(newBalance)

	zap.L().Info("Deposit processed successfully",
		zap.Int64("transaction_id", tx.Id),
		zap.Int64("amount", amount),
		zap.Int64("new_balance", newBalance))

	return &models.WalletResult{
		Success:       true,
		Amount:        amount,
		NewBalance:    newBalance,
		NewBalanceUsd: s.ledger.ToUsd(newBalance),
		TransactionId: tx.Id,
	}, nil
}
