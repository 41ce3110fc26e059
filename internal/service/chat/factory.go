package chat

import (
	"context"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/service/history"
	"github.com/sandevgo/bowen/internal/service/session"
	"github.com/sandevgo/bowen/internal/storage"
)

// Factory opens conversations that share one client and one storage backend,
// each under its own key scope.
type Factory struct {
	api core.LegislationAPI
	kv  core.KeyValueStore
}

func NewFactory(api core.LegislationAPI, kv core.KeyValueStore) *Factory {
	return &Factory{
		api: api,
		kv:  kv,
	}
}

// Open restores the conversation stored under scope. An empty scope is the
// default terminal conversation.
func (f *Factory) Open(ctx context.Context, scope string) *Chat {
	kv := storage.Scoped(f.kv, scope)
	return New(ctx, f.api, history.NewStore(kv), session.NewProvider(kv))
}
