package wallet

import (
	"context"
	"fmt"

	"matka-ledger-go/internal/models"

	"go.uber.org/zap"
)

// Reconciliation compares the stored balance with the balance implied by the
// transaction log.
type Reconciliation struct {
	InitialBalance int64
	Credits        int64
	Debits         int64
	Expected       int64
	Actual         int64
}

func (r Reconciliation) Balanced() bool {
	return r.Expected == r.Actual
}

// Reconcile checks balance == initial + credits - debits and returns
// ErrBalanceMismatch alongside the figures when it does not hold.
func (l *Ledger) Reconcile(ctx context.Context) (Reconciliation, error) {
	s := l.readState(ctx)

	r := Reconciliation{InitialBalance: l.opts.InitialBalance, Actual: s.balance}
	for _, t := range s.transactions {
		switch t.Type {
		case models.KindCredit:
			r.Credits += t.Amount
		case models.KindDebit:
			r.Debits += t.Amount
		}
	}
	r.Expected = r.InitialBalance + r.Credits - r.Debits

	if !r.Balanced() {
		zap.L().Error("Wallet balance does not reconcile",
			zap.Int64("expected", r.Expected),
			zap.Int64("actual", r.Actual),
			zap.Int64("credits", r.Credits),
			zap.Int64("debits", r.Debits))
		return r, fmt.Errorf("%w: expected %d, stored %d", ErrBalanceMismatch, r.Expected, r.Actual)
	}
	return r, nil
}
