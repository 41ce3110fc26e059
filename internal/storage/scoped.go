package storage

import (
	"context"

	"github.com/sandevgo/bowen/internal/core"
)

type scoped struct {
	store  core.KeyValueStore
	prefix string
}

// Scoped namespaces every key of store under scope, so several conversations
// can share one backend. An empty scope returns store unchanged.
func Scoped(store core.KeyValueStore, scope string) core.KeyValueStore {
	if scope == "" {
		return store
	}
	return &scoped{store: store, prefix: scope + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.prefix+key)
}
