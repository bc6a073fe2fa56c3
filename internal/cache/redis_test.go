package cache

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/store"
	"matka-ledger-go/internal/wallet"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

// setupRedis connects to REDIS_ADDR under a throwaway key prefix, or to an
// in-process miniredis when REDIS_ADDR is not set.
func setupRedis(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = miniredis.RunT(t).Addr()
	}
	return connectRedis(t, addr, 50)
}

func connectRedis(t *testing.T, addr string, maxRetries int) *RedisStore {
	t.Helper()
	s, err := NewRedisStore(context.Background(), models.RedisConfig{
		Addr:        addr,
		KeyPrefix:   "test:" + uuid.New().String() + ":",
		MaxRetries:  maxRetries,
		PingTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestNewRedisStore_InvalidConfig(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), models.RedisConfig{MaxRetries: 1}); err == nil {
		t.Error("Expected error for empty address")
	}
	if _, err := NewRedisStore(context.Background(), models.RedisConfig{Addr: "localhost:6379"}); err == nil {
		t.Error("Expected error for zero retries")
	}
}

func TestRedisStore_GetMissing(t *testing.T) {
	s := setupRedis(t)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRedisStore_UpdateRollsBackOnError(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()
	if err := s.Set(ctx, "balance", []byte("1000")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	boom := errors.New("insufficient")
	err := s.Update(ctx, func(tx store.Tx) error {
		_ = tx.Set("balance", []byte("0"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected caller error, got %v", err)
	}

	got, _ := s.Get(ctx, "balance")
	if string(got) != "1000" {
		t.Errorf("Expected balance unchanged, got %s", got)
	}
}

func TestRedisStore_ConcurrentIncrements(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()
	if err := s.Set(ctx, "counter", []byte("0")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(ctx, func(tx store.Tx) error {
				raw, err := tx.Get("counter")
				if err != nil {
					return err
				}
				n, _ := strconv.Atoi(string(raw))
				return tx.Set("counter", []byte(strconv.Itoa(n+1)))
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := s.Get(ctx, "counter")
	if string(got) != strconv.Itoa(workers) {
		t.Errorf("Expected counter %d, got %s", workers, got)
	}
}

func TestRedisStore_UpdateRetriesOnConflict(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()
	if err := s.Set(ctx, "balance", []byte("1000")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	attempts := 0
	err := s.Update(ctx, func(tx store.Tx) error {
		attempts++
		raw, err := tx.Get("balance")
		if err != nil {
			return err
		}
		if attempts == 1 {
			// Another session writes the watched key before EXEC.
			if err := s.Set(ctx, "balance", []byte("2000")); err != nil {
				return err
			}
		}
		n, _ := strconv.Atoi(string(raw))
		return tx.Set("balance", []byte(strconv.Itoa(n+1)))
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}

	got, _ := s.Get(ctx, "balance")
	if string(got) != "2001" {
		t.Errorf("Expected retry to apply on top of concurrent write, got %s", got)
	}
}

func TestRedisStore_UpdateGivesUpAfterMaxRetries(t *testing.T) {
	mr := miniredis.RunT(t)
	s := connectRedis(t, mr.Addr(), 3)
	ctx := context.Background()

	attempts := 0
	err := s.Update(ctx, func(tx store.Tx) error {
		attempts++
		if _, err := tx.Get("balance"); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := s.Set(ctx, "balance", []byte(strconv.Itoa(attempts))); err != nil {
			return err
		}
		return tx.Set("balance", []byte("0"))
	})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}

	got, _ := s.Get(ctx, "balance")
	if string(got) != "3" {
		t.Errorf("Expected only the concurrent writes to land, got %s", got)
	}
}

func TestRedisStore_ServerDownIsPersistenceError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	s := connectRedis(t, mr.Addr(), 3)
	ctx := context.Background()
	mr.Close()

	if _, err := s.Get(ctx, "balance"); !errors.Is(err, store.ErrPersistence) {
		t.Errorf("Get: expected ErrPersistence, got %v", err)
	}
	if err := s.Set(ctx, "balance", []byte("1")); !errors.Is(err, store.ErrPersistence) {
		t.Errorf("Set: expected ErrPersistence, got %v", err)
	}

	// Blind write: the failure surfaces from EXEC, not from the caller.
	err = s.Update(ctx, func(tx store.Tx) error {
		return tx.Set("balance", []byte("1"))
	})
	if !errors.Is(err, store.ErrPersistence) {
		t.Errorf("Update write: expected ErrPersistence, got %v", err)
	}

	err = s.Update(ctx, func(tx store.Tx) error {
		_, err := tx.Get("balance")
		return err
	})
	if !errors.Is(err, store.ErrPersistence) {
		t.Errorf("Update read: expected ErrPersistence, got %v", err)
	}

	boom := errors.New("insufficient")
	err = s.Update(ctx, func(tx store.Tx) error {
		return boom
	})
	if err != boom {
		t.Errorf("Expected caller error returned unchanged, got %v", err)
	}
}

func TestRedisStore_WalletScenario(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()
	l := wallet.New(s, wallet.Options{InitialBalance: 1000})

	if got, err := l.Balance(ctx); err != nil || got != 1000 {
		t.Fatalf("Expected initial balance 1000, got %d (%v)", got, err)
	}
	if _, err := l.Credit(ctx, 500, "bonus"); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if _, err := l.Withdraw(ctx, 300, models.UPIMethod{VPA: "x@upi"}); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if _, err := l.Withdraw(ctx, 5000, models.UPIMethod{VPA: "x@upi"}); !errors.Is(err, wallet.ErrInsufficientBalance) {
		t.Fatalf("Expected ErrInsufficientBalance, got %v", err)
	}

	if got, _ := l.Balance(ctx); got != 1200 {
		t.Errorf("Expected balance 1200, got %d", got)
	}
	if n := len(l.Transactions(ctx)); n != 2 {
		t.Errorf("Expected 2 transactions, got %d", n)
	}
	if n := len(l.Withdrawals(ctx)); n != 1 {
		t.Errorf("Expected 1 withdrawal, got %d", n)
	}
	if _, err := l.Reconcile(ctx); err != nil {
		t.Errorf("Expected ledger to reconcile: %v", err)
	}

	// A second session on the same store sees the same wallet.
	other := wallet.New(s, wallet.Options{InitialBalance: 1000})
	if got, _ := other.Balance(ctx); got != 1200 {
		t.Errorf("Expected shared balance 1200, got %d", got)
	}
}
