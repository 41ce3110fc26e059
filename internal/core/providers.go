package core

import "context"

// LegislationAPI is the remote answering service as seen by the client.
type LegislationAPI interface {
	SendMessage(ctx context.Context, text, sessionID string) (*ChatResponse, error)
	GetActs(ctx context.Context) ([]Act, error)
	CheckHealth(ctx context.Context) bool
	Health(ctx context.Context) (*HealthStatus, error)
	Search(ctx context.Context, query string, limit int) (*SearchResponse, error)
}
