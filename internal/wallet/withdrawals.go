package wallet

import (
	"context"
	"fmt"

	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Withdraw debits amount and records a withdrawal to method. The balance, the
// debit transaction and the withdrawal record are written together or not at
// all. In manual approval mode the withdrawal starts out pending.
func (l *Ledger) Withdraw(ctx context.Context, amount int64, method models.PayoutMethod) (*models.Withdrawal, error) {
	if err := ValidateMethod(method); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	status := models.WithdrawalApproved
	if l.opts.ApprovalMode == models.ApprovalManual {
		status = models.WithdrawalPending
	}
	reference := uuid.New().String()

	var created models.Withdrawal
	var newBalance int64
	err := l.kv.Update(ctx, func(tx store.Tx) error {
		s, err := l.loadState(tx)
		if err != nil {
			return err
		}
		if amount > s.balance {
			return insufficient(s.balance, amount)
		}

		now := l.opts.Now()
		id := s.nextId(now.UnixMilli())
		created = models.Withdrawal{
			Id:        id,
			Amount:    amount,
			UsdAmount: l.ToUsd(amount),
			Method:    method.Label(),
			Details:   method.Details(),
			Status:    status,
			Reference: reference,
			Timestamp: now.UnixMilli(),
		}
		debit := models.Transaction{
			Id:          id + 1,
			Type:        models.KindDebit,
			Amount:      amount,
			Description: "Withdrawal - " + method.Label(),
			Timestamp:   now.UnixMilli(),
		}

		newBalance = s.balance - amount
		s.transactions = prepend(s.transactions, debit)
		s.withdrawals = prepend(s.withdrawals, created)

		if err := writeBalance(tx, newBalance); err != nil {
			return err
		}
		if err := writeList(tx, TransactionsKey, s.transactions); err != nil {
			return err
		}
		return writeList(tx, WithdrawalsKey, s.withdrawals)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}

	zap.L().Info("Withdrawal recorded",
		zap.Int64("withdrawal_id", created.Id),
		zap.String("reference", created.Reference),
		zap.Int64("amount", amount),
		zap.String("usd_amount", created.UsdAmount.StringFixed(2)),
		zap.String("method", created.Method),
		zap.String("status", string(created.Status)),
		zap.Int64("new_balance", newBalance))
	return &created, nil
}

// Approve settles a pending withdrawal. The funds already left the balance
// when the withdrawal was recorded.
func (l *Ledger) Approve(ctx context.Context, id int64) (*models.Withdrawal, error) {
	var updated models.Withdrawal
	err := l.kv.Update(ctx, func(tx store.Tx) error {
		s, err := l.loadState(tx)
		if err != nil {
			return err
		}
		idx, err := findPending(s.withdrawals, id)
		if err != nil {
			return err
		}
		s.withdrawals[idx].Status = models.WithdrawalApproved
		updated = s.withdrawals[idx]
		return writeList(tx, WithdrawalsKey, s.withdrawals)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("Withdrawal approved", zap.Int64("withdrawal_id", id), zap.Int64("amount", updated.Amount))
	return &updated, nil
}

// Reject cancels a pending withdrawal and returns its amount to the balance
// with a reversal credit.
func (l *Ledger) Reject(ctx context.Context, id int64) (*models.Withdrawal, error) {
	var updated models.Withdrawal
	var newBalance int64
	err := l.kv.Update(ctx, func(tx store.Tx) error {
		s, err := l.loadState(tx)
		if err != nil {
			return err
		}
		idx, err := findPending(s.withdrawals, id)
		if err != nil {
			return err
		}
		s.withdrawals[idx].Status = models.WithdrawalRejected
		updated = s.withdrawals[idx]

		now := l.opts.Now()
		reversal := models.Transaction{
			Id:          s.nextId(now.UnixMilli()),
			Type:        models.KindCredit,
			Amount:      updated.Amount,
			Description: "Withdrawal reversed - " + updated.Method,
			Timestamp:   now.UnixMilli(),
		}
		newBalance = s.balance + updated.Amount
		s.transactions = prepend(s.transactions, reversal)

		if err := writeBalance(tx, newBalance); err != nil {
			return err
		}
		if err := writeList(tx, TransactionsKey, s.transactions); err != nil {
			return err
		}
		return writeList(tx, WithdrawalsKey, s.withdrawals)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("Withdrawal rejected",
		zap.Int64("withdrawal_id", id),
		zap.Int64("refunded", updated.Amount),
		zap.Int64("new_balance", newBalance))
	return &updated, nil
}

// PendingWithdrawals returns withdrawals awaiting approval, newest first.
func (l *Ledger) PendingWithdrawals(ctx context.Context) []models.Withdrawal {
	var pending []models.Withdrawal
	for _, w := range l.Withdrawals(ctx) {
		if w.Status == models.WithdrawalPending {
			pending = append(pending, w)
		}
	}
	return pending
}

func findPending(withdrawals []models.Withdrawal, id int64) (int, error) {
	for i, w := range withdrawals {
		if w.Id != id {
			continue
		}
		if w.Status != models.WithdrawalPending {
			return -1, fmt.Errorf("%w: withdrawal %d is %s", ErrWithdrawalNotPending, id, w.Status)
		}
		return i, nil
	}
	return -1, fmt.Errorf("%w: %d", ErrWithdrawalNotFound, id)
}
