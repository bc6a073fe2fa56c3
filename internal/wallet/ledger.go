// Package wallet keeps a single user's balance, transaction log and
// withdrawal log in a key-value store.
//
// Balance is stored, not recomputed, so every mutation writes the balance
// and its ledger entry in one store transaction. Transactions and
// withdrawals are append-only and kept newest first.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultInitialBalance is the welcome bonus seeded into a fresh store.
const DefaultInitialBalance int64 = 10000

var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidMethod        = errors.New("invalid payout method")
	ErrWithdrawalNotFound   = errors.New("withdrawal not found")
	ErrWithdrawalNotPending = errors.New("withdrawal is not pending")
	ErrBalanceMismatch      = errors.New("balance does not match ledger")
)

// Options configures a Ledger. Zero values fall back to the defaults.
type Options struct {
	InitialBalance int64
	ApprovalMode   models.ApprovalMode
	InrPerUsd      decimal.Decimal
	Now            func() time.Time
}

// Ledger is the wallet of one client session. It holds no state of its own;
// all state lives in the store, so a Ledger may be shared between goroutines
// as long as the store's Update is atomic.
type Ledger struct {
	kv   store.KeyValueStore
	opts Options
}

func New(kv store.KeyValueStore, opts Options) *Ledger {
	if opts.InitialBalance < 0 {
		opts.InitialBalance = 0
	}
	if opts.ApprovalMode == "" {
		opts.ApprovalMode = models.ApprovalAuto
	}
	if !opts.InrPerUsd.IsPositive() {
		opts.InrPerUsd = decimal.NewFromInt(84)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Ledger{kv: kv, opts: opts}
}

// ApprovalMode reports how new withdrawals are settled.
func (l *Ledger) ApprovalMode() models.ApprovalMode {
	return l.opts.ApprovalMode
}

// ToUsd converts an amount in minor units to dollars, rounded to cents.
func (l *Ledger) ToUsd(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Div(l.opts.InrPerUsd).Round(2)
}

type ctxGetter struct {
	ctx context.Context
	kv  store.KeyValueStore
}

func (g ctxGetter) Get(key string) ([]byte, error) {
	return g.kv.Get(g.ctx, key)
}

// readState loads the records for a read path. Store failures are logged and
// answered with defaults rather than surfaced.
func (l *Ledger) readState(ctx context.Context) *state {
	s, err := l.loadState(ctxGetter{ctx: ctx, kv: l.kv})
	if err != nil {
		zap.L().Warn("Failed to read wallet state, using defaults", zap.Error(err))
		return &state{balance: l.opts.InitialBalance}
	}
	return s
}

// Balance returns the current balance. The first read against an empty store
// seeds the welcome balance; that write is the only error this returns.
func (l *Ledger) Balance(ctx context.Context) (int64, error) {
	s := l.readState(ctx)
	if !s.seeded {
		return s.balance, nil
	}
	if err := l.ensureSeeded(ctx); err != nil {
		return 0, err
	}
	return s.balance, nil
}

// ensureSeeded writes the initial balance if no balance record exists yet.
// Checking inside the transaction keeps seeding to at most once per store.
func (l *Ledger) ensureSeeded(ctx context.Context) error {
	err := l.kv.Update(ctx, func(tx store.Tx) error {
		_, err := tx.Get(BalanceKey)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		zap.L().Info("Seeding wallet with initial balance", zap.Int64("initial_balance", l.opts.InitialBalance))
		return writeBalance(tx, l.opts.InitialBalance)
	})
	if err != nil {
		return fmt.Errorf("failed to seed wallet: %w", err)
	}
	return nil
}

// Transactions returns the transaction log, newest first.
func (l *Ledger) Transactions(ctx context.Context) []models.Transaction {
	s := l.readState(ctx)
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Withdrawals returns the withdrawal log, newest first.
func (l *Ledger) Withdrawals(ctx context.Context) []models.Withdrawal {
	s := l.readState(ctx)
	out := make([]models.Withdrawal, len(s.withdrawals))
	copy(out, s.withdrawals)
	return out
}

// Credit adds amount to the balance and records a credit transaction.
func (l *Ledger) Credit(ctx context.Context, amount int64, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	var created models.Transaction
	var newBalance int64
	err := l.kv.Update(ctx, func(tx store.Tx) error {
		s, err := l.loadState(tx)
		if err != nil {
			return err
		}

		now := l.opts.Now()
		created = models.Transaction{
			Id:          s.nextId(now.UnixMilli()),
			Type:        models.KindCredit,
			Amount:      amount,
			Description: description,
			Timestamp:   now.UnixMilli(),
		}
		newBalance = s.balance + amount
		s.transactions = prepend(s.transactions, created)

		if err := writeBalance(tx, newBalance); err != nil {
			return err
		}
		return writeList(tx, TransactionsKey, s.transactions)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	zap.L().Info("Wallet credited",
		zap.Int64("transaction_id", created.Id),
		zap.Int64("amount", amount),
		zap.String("description", description),
		zap.Int64("new_balance", newBalance))
	return &created, nil
}

// Spend debits amount for a purchase such as a bet. No withdrawal record is made.
func (l *Ledger) Spend(ctx context.Context, amount int64, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	var created models.Transaction
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
		created = models.Transaction{
			Id:          s.nextId(now.UnixMilli()),
			Type:        models.KindDebit,
			Amount:      amount,
			Description: description,
			Timestamp:   now.UnixMilli(),
		}
		newBalance = s.balance - amount
		s.transactions = prepend(s.transactions, created)

		if err := writeBalance(tx, newBalance); err != nil {
			return err
		}
		return writeList(tx, TransactionsKey, s.transactions)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}

	zap.L().Info("Wallet debited",
		zap.Int64("transaction_id", created.Id),
		zap.Int64("amount", amount),
		zap.String("description", description),
		zap.Int64("new_balance", newBalance))
	return &created, nil
}

func insufficient(balance, amount int64) error {
	return fmt.Errorf("%w: current=%d, requested=%d, shortfall=%d",
		ErrInsufficientBalance, balance, amount, amount-balance)
}

func prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}
