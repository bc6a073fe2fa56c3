package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Persisted record keys. Each record is read and written independently so a
// store holding only some of them is still valid.
const (
	BalanceKey      = "matka_wallet_balance"
	TransactionsKey = "matka_transactions"
	WithdrawalsKey  = "matka_withdrawals"
)

// getter is satisfied by store.Tx and by a context-bound store reader
type getter interface {
	Get(key string) ([]byte, error)
}

// state is the in-memory image of the three records during one operation
type state struct {
	balance      int64
	seeded       bool // balance record was absent and has been defaulted
	transactions []models.Transaction
	withdrawals  []models.Withdrawal
}

// loadState reads all three records. Missing or unparseable records fall back
// to defaults; backend failures are returned.
func (l *Ledger) loadState(g getter) (*state, error) {
	s := &state{}

	raw, err := g.Get(BalanceKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.balance = l.opts.InitialBalance
		s.seeded = true
	case err != nil:
		return nil, err
	default:
		s.balance = l.decodeBalance(raw)
	}

	if err := decodeList(g, TransactionsKey, &s.transactions); err != nil {
		return nil, err
	}
	if err := decodeList(g, WithdrawalsKey, &s.withdrawals); err != nil {
		return nil, err
	}
	return s, nil
}

func (l *Ledger) decodeBalance(raw []byte) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || v < 0 {
		zap.L().Warn("Unreadable wallet balance, using initial balance",
			zap.String("key", BalanceKey),
			zap.String("raw", string(raw)),
			zap.Int64("initial_balance", l.opts.InitialBalance))
		return l.opts.InitialBalance
	}
	return v
}

func decodeList[T any](g getter, key string, out *[]T) error {
	raw, err := g.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		*out = nil
		return nil
	}
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*out = nil
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		zap.L().Warn("Unreadable wallet record, using empty list", zap.String("key", key), zap.Error(err))
		*out = nil
	}
	return nil
}

func writeBalance(tx store.Tx, balance int64) error {
	return tx.Set(BalanceKey, []byte(strconv.FormatInt(balance, 10)))
}

func writeList[T any](tx store.Tx, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return tx.Set(key, raw)
}

// nextId returns an id strictly greater than every stored id and no smaller
// than the current millisecond clock.
func (s *state) nextId(nowMs int64) int64 {
	next := nowMs
	for _, t := range s.transactions {
		if t.Id >= next {
			next = t.Id + 1
		}
	}
	for _, w := range s.withdrawals {
		if w.Id >= next {
			next = w.Id + 1
		}
	}
	return next
}
