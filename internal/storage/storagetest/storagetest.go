// Package storagetest holds behaviour every core.KeyValueStore must share.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sandevgo/bowen/internal/core"
)

func Run(t *testing.T, newStore func(t *testing.T) core.KeyValueStore) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "absent")
		if !errors.Is(err, core.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("set get overwrite", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if err := s.Set(ctx, core.SessionKey, "first"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := s.Set(ctx, core.SessionKey, "second"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := s.Get(ctx, core.SessionKey)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "second" {
			t.Errorf("Get() = %q, want %q", got, "second")
		}
	})

	t.Run("special characters", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		value := `[{"role":"user","content":"Kia ora 🌿\n\"bond\" limit?"}]`

		if err := s.Set(ctx, core.MessagesKey, value); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := s.Get(ctx, core.MessagesKey)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != value {
			t.Errorf("Get() = %q, want %q", got, value)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if err := s.Set(ctx, "k", "v"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := s.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := s.Get(ctx, "k"); !errors.Is(err, core.ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
		}
		if err := s.Delete(ctx, "k"); err != nil {
			t.Errorf("deleting an absent key should succeed, got %v", err)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_ = s.Set(ctx, core.SessionKey, "sid")
		_ = s.Set(ctx, core.MessagesKey, "[]")
		_ = s.Delete(ctx, core.MessagesKey)

		got, err := s.Get(ctx, core.SessionKey)
		if err != nil || got != "sid" {
			t.Errorf("session key should survive deleting messages, got %q, %v", got, err)
		}
	})

	t.Run("concurrent writers", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if err := s.Set(ctx, fmt.Sprintf("key-%d", i), "v"); err != nil {
					t.Errorf("Set failed: %v", err)
				}
			}(i)
		}
		wg.Wait()

		for i := 0; i < 10; i++ {
			if _, err := s.Get(ctx, fmt.Sprintf("key-%d", i)); err != nil {
				t.Errorf("key-%d missing: %v", i, err)
			}
		}
	})
}
