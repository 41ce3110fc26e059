package core

import (
	"context"
	"errors"
)

const (
	SessionKey  = "bowen_session_id"
	MessagesKey = "bowen_messages"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the client-local persistent storage. Implementations must
// be safe for concurrent use.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
