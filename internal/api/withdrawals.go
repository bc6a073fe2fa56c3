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

// Withdraw validates the payout method and minimum, then debits the wallet.
// Validation failures come back as an unsuccessful result; store failures
// are returned as errors.
func (s *LedgerService) Withdraw(ctx context.Context, amount int64, method models.PayoutMethod) (*models.WalletResult, error) {
	if err := wallet.ValidateMethod(method); err != nil {
		metrics.WalletOperations.WithLabelValues("withdraw", metrics.OutcomeRejected).Inc()
		return &models.WalletResult{Success: false, Error: err.Error()}, nil
	}
	if amount > 0 && amount < s.wallet.MinWithdrawal {
		metrics.WalletOperations.WithLabelValues("withdraw", metrics.OutcomeRejected).Inc()
		return &models.WalletResult{
			Success: false,
			Error:   fmt.Sprintf("minimum withdrawal is %d", s.wallet.MinWithdrawal),
		}, nil
	}

	zap.L().Info("Processing withdrawal",
		zap.Int64("amount", amount),
		zap.String("method", method.Label()))

	w, err := s.ledger.Withdraw(ctx, amount, method)
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientBalance) || errors.Is(err, wallet.ErrInvalidAmount) {
			metrics.WalletOperations.WithLabelValues("withdraw", metrics.OutcomeRejected).Inc()
			zap.L().Info("Withdrawal rejected",
				zap.Int64("amount", amount),
				zap.Error(err))
			return &models.WalletResult{Success: false, Error: err.Error()}, nil
		}

		metrics.WalletOperations.WithLabelValues("withdraw", metrics.OutcomeError).Inc()
		zap.L().Error("Withdrawal processing failed",
			zap.Int64("amount", amount),
			zap.String("method", method.Label()),
			zap.Error(err))
		return nil, err
	}

	newBalance, err := s.ledger.Balance(ctx)
	if err != nil {
		zap.L().Error("Balance lookup failed after withdrawal processing", zap.Error(err))
		return nil, err
	}

	metrics.WalletOperations.WithLabelValues("withdraw", metrics.OutcomeOk).Inc()
	metrics.WalletAmount.WithLabelValues("withdraw").Add(float64(amount))
	s.observeBalance(newBalance)

	zap.L().Info("Withdrawal processed successfully",
		zap.Int64("withdrawal_id", w.Id),
		zap.String("reference", w.Reference),
		zap.Int64("amount", amount),
		zap.Int64("new_balance", newBalance))

	return &models.WalletResult{
		Success:       true,
		Amount:        amount,
		NewBalance:    newBalance,
		NewBalanceUsd: s.ledger.ToUsd(newBalance),
		WithdrawalId:  w.Id,
		Status:        string(w.Status),
	}, nil
}

// ApproveWithdrawal settles a pending withdrawal
func (s *LedgerService) ApproveWithdrawal(ctx context.Context, id int64) (*models.WalletResult, error) {
	return s.settle(ctx, "approve", id, s.ledger.Approve)
}

// RejectWithdrawal cancels a pending withdrawal and refunds it
func (s *LedgerService) RejectWithdrawal(ctx context.Context, id int64) (*models.WalletResult, error) {
	return s.settle(ctx, "reject", id, s.ledger.Reject)
}

func (s *LedgerService) settle(ctx context.Context, op string, id int64, fn func(context.Context, int64) (*models.Withdrawal, error)) (*models.WalletResult, error) {
	w, err := fn(ctx, id)
	if err != nil {
		if errors.Is(err, wallet.ErrWithdrawalNotFound) || errors.Is(err, wallet.ErrWithdrawalNotPending) {
			metrics.WalletOperations.WithLabelValues(op, metrics.OutcomeRejected).Inc()
			zap.L().Warn("Withdrawal cannot be settled",
				zap.String("operation", op),
				zap.Int64("withdrawal_id", id),
				zap.Error(err))
			return &models.WalletResult{Success: false, WithdrawalId: id, Error: err.Error()}, nil
		}
		metrics.WalletOperations.WithLabelValues(op, metrics.OutcomeError).Inc()
		return nil, err
	}

	newBalance, err := s.ledger.Balance(ctx)
	if err != nil {
		return nil, err
	}

	metrics.WalletOperations.WithLabelValues(op, metrics.OutcomeOk).Inc()
	s.observeBalance(newBalance)

	return &models.WalletResult{
		Success:       true,
		Amount:        w.Amount,
		NewBalance:    newBalance,
		NewBalanceUsd: s.ledger.ToUsd(newBalance),
		WithdrawalId:  w.Id,
		Status:        string(w.Status),
	}, nil
}
