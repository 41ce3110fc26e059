package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/pkg/log"
)

// Provider hands out the id that lets the service keep conversational
// context between requests.
type Provider struct {
	store core.KeyValueStore
}

func NewProvider(store core.KeyValueStore) *Provider {
	return &Provider{store: store}
}

// NewEphemeral returns a provider with no storage; every call mints a new id.
func NewEphemeral() *Provider {
	return &Provider{}
}

// GetOrCreate returns the stored id, creating and persisting one on first use.
// Storage failures degrade to a fresh unpersisted id.
func (p *Provider) GetOrCreate(ctx context.Context) string {
	if p.store == nil {
		return uuid.NewString()
	}

	logger := log.FromCtx(ctx)

	id, err := p.store.Get(ctx, core.SessionKey)
	if err == nil && id != "" {
		return id
	}
	if err != nil && !errors.Is(err, core.ErrKeyNotFound) {
		logger.Warn().Err(err).Msg("failed to read session id, using a temporary one")
		return uuid.NewString()
	}

	id = uuid.NewString()
	if err := p.store.Set(ctx, core.SessionKey, id); err != nil {
		logger.Warn().Err(err).Msg("failed to persist session id")
		return id
	}

	logger.Debug().Str("session_id", id).Msg("created new session")
	return id
}

// Clear forgets the stored id so the next GetOrCreate starts a new session.
func (p *Provider) Clear(ctx context.Context) {
	if p.store == nil {
		return
	}
	if err := p.store.Delete(ctx, core.SessionKey); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to clear session id")
	}
}
