// Package cache implements the key-value store on Redis so several sessions
// (browser tabs, CLI invocations, hosts) can share one wallet.
package cache

import (
	"context"
	"errors"
	"fmt"

	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check: *RedisStore must satisfy store.KeyValueStore.
var _ store.KeyValueStore = (*RedisStore)(nil)

type RedisStore struct {
	client     *redis.Client
	prefix     string
	maxRetries int
}

func NewRedisStore(ctx context.Context, cfg models.RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	if cfg.MaxRetries <= 0 {
		return nil, fmt.Errorf("redis transaction retries must be positive, got %d", cfg.MaxRetries)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	zap.L().Info("Connected to Redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return &RedisStore{client: client, prefix: cfg.KeyPrefix, maxRetries: cfg.MaxRetries}, nil
}

func (r *RedisStore) key(k string) string {
	return r.prefix + k
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", store.ErrPersistence, key, err)
	}
	return b, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", store.ErrPersistence, key, err)
	}
	return nil
}

// Update watches every key fn reads and commits fn's writes in MULTI/EXEC.
// If another session touched a watched key the whole attempt is replayed.
// Errors from fn are returned as-is; every other failure is a persistence
// error.
func (r *RedisStore) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, func(rtx *redis.Tx) error {
			t := &redisTx{ctx: ctx, rtx: rtx, store: r, writes: make(map[string][]byte)}
			if err := fn(t); err != nil {
				return callerErr{err}
			}
			if len(t.writes) == 0 {
				return nil
			}
			_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				for k, v := range t.writes {
					pipe.Set(ctx, r.key(k), v, 0)
				}
				return nil
			})
			return err
		})

		var ce callerErr
		switch {
		case err == nil:
			return nil
		case errors.As(err, &ce):
			return ce.err
		case errors.Is(err, redis.TxFailedErr):
			zap.L().Debug("Redis transaction conflict, retrying", zap.Int("attempt", attempt))
			continue
		default:
			return fmt.Errorf("%w: %w", store.ErrPersistence, err)
		}
	}
	return fmt.Errorf("%w: gave up after %d attempts", store.ErrConflict, r.maxRetries)
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() {
	if err := r.client.Close(); err != nil {
		zap.L().Warn("Failed to close redis client", zap.Error(err))
	}
}

type redisTx struct {
	ctx    context.Context
	rtx    *redis.Tx
	store  *RedisStore
	writes map[string][]byte
}

func (t *redisTx) Get(key string) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		return v, nil
	}
	if err := t.rtx.Watch(t.ctx, t.store.key(key)).Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to watch %s: %w", store.ErrPersistence, key, err)
	}
	b, err := t.rtx.Get(t.ctx, t.store.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", store.ErrPersistence, key, err)
	}
	return b, nil
}

func (t *redisTx) Set(key string, value []byte) error {
	t.writes[key] = value
	return nil
}

// callerErr marks an error returned by the update function so it is not
// mistaken for a transport failure.
type callerErr struct {
	err error
}

func (e callerErr) Error() string { return e.err.Error() }

func (e callerErr) Unwrap() error { return e.err }
