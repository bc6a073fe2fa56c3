package store

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// Compile-time checks that the interface is importable and usable.
func TestKeyValueStoreInterfaceExists(t *testing.T) {
	_ = ErrNotFound
	_ = ErrPersistence
	_ = ErrConflict

	var _ KeyValueStore = NewMemoryStore()
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	value := []byte("1000")
	if err := s.Set(ctx, "balance", value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = '9'

	got, err := s.Get(ctx, "balance")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "1000" {
		t.Errorf("Expected stored copy 1000, got %s", got)
	}
}

func TestMemoryStore_UpdateRollsBackOnError(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Set(ctx, "a", []byte("1"))

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx Tx) error {
		if err := tx.Set("a", []byte("2")); err != nil {
			return err
		}
		if err := tx.Set("b", []byte("3")); err != nil {
			return err
		}
		got, _ := tx.Get("a")
		if string(got) != "2" {
			t.Errorf("Expected read-your-writes inside tx, got %s", got)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}

	got, _ := s.Get(ctx, "a")
	if string(got) != "1" {
		t.Errorf("Expected a unchanged, got %s", got)
	}
	if _, err := s.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected b absent, got %v", err)
	}
}

func TestMemoryStore_UpdateSerializesWriters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Set(ctx, "n", []byte{0})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, func(tx Tx) error {
				v, err := tx.Get("n")
				if err != nil {
					return err
				}
				return tx.Set("n", []byte{v[0] + 1})
			})
		}()
	}
	wg.Wait()

	got, _ := s.Get(ctx, "n")
	if got[0] != 50 {
		t.Errorf("Expected 50 increments, got %d", got[0])
	}
}
