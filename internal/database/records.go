package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"matka-ledger-go/internal/store"

	"go.uber.org/zap"
)

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Get returns the raw value stored under key
func (s *Service) Get(ctx context.Context, key string) ([]byte, error) {
	return getRecord(ctx, s.db, key)
}

// Set overwrites the value stored under key
func (s *Service) Set(ctx context.Context, key string, value []byte) error {
	return setRecord(ctx, s.db, key, value)
}

// Update runs fn inside a single SQLite transaction. The write lock is taken
// at BEGIN, so the read-modify-write cannot interleave with another writer.
func (s *Service) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", store.ErrPersistence, err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			zap.L().Warn("Failed to roll back transaction", zap.Error(err))
		}
	}()

	if err := fn(&sqlTx{ctx: ctx, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", store.ErrPersistence, err)
	}
	return nil
}

type sqlTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *sqlTx) Get(key string) ([]byte, error) {
	return getRecord(t.ctx, t.tx, key)
}

func (t *sqlTx) Set(key string, value []byte) error {
	return setRecord(t.ctx, t.tx, key, value)
}

func getRecord(ctx context.Context, q queryer, key string) ([]byte, error) {
	var value string
	err := q.QueryRowContext(ctx, queryGetRecord, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		zap.L().Error("Failed to read record", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to read %s: %w", store.ErrPersistence, key, err)
	}
	return []byte(value), nil
}

func setRecord(ctx context.Context, q queryer, key string, value []byte) error {
	if _, err := q.ExecContext(ctx, queryUpsertRecord, key, string(value)); err != nil {
		zap.L().Error("Failed to write record", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: failed to write %s: %w", store.ErrPersistence, key, err)
	}
	zap.L().Debug("Record written", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}
