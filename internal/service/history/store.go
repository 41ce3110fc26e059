package history

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/pkg/log"
)

// Store persists the conversation as a JSON array. Nothing here returns an
// error: a broken store only costs persistence.
type Store struct {
	kv core.KeyValueStore
}

func NewStore(kv core.KeyValueStore) *Store {
	return &Store{kv: kv}
}

func (s *Store) Load(ctx context.Context) []core.Message {
	raw, err := s.kv.Get(ctx, core.MessagesKey)
	if err != nil {
		if !errors.Is(err, core.ErrKeyNotFound) {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to load conversation")
		}
		return []core.Message{}
	}

	var msgs []core.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("stored conversation is corrupt, starting empty")
		return []core.Message{}
	}
	if msgs == nil {
		msgs = []core.Message{}
	}
	return msgs
}

func (s *Store) Save(ctx context.Context, msgs []core.Message) {
	if msgs == nil {
		msgs = []core.Message{}
	}

	raw, err := json.Marshal(msgs)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to encode conversation")
		return
	}
	if err := s.kv.Set(ctx, core.MessagesKey, string(raw)); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to save conversation")
	}
}

// Clear removes the conversation and keeps the session id.
func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Delete(ctx, core.MessagesKey); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to clear conversation")
	}
}

// ClearAll removes the conversation and the session id.
func (s *Store) ClearAll(ctx context.Context) {
	s.Clear(ctx)
	if err := s.kv.Delete(ctx, core.SessionKey); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to clear session id")
	}
}
