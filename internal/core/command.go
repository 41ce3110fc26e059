package core

import (
	"context"
	"time"
)

type CmdRouter interface {
	Execute(ctx context.Context, conv Conversation, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, conv Conversation, args []string) (string, error)
}

// Outcome is the result of one Send, captured under the conversation lock so
// callers never need to read shared state afterwards.
type Outcome struct {
	// Accepted is false when the text was blank or another request was running.
	Accepted bool
	// Answer is set on success.
	Answer *Message
	// Error is the user-facing failure text.
	Error      string
	RetryAfter time.Duration
	// Discarded is set when the conversation was cleared before the answer came back.
	Discarded bool
}

func (o Outcome) Failed() bool {
	return o.Error != ""
}

// Conversation is the chat state a command or transport operates on.
type Conversation interface {
	Send(ctx context.Context, text string) Outcome
	Retry(ctx context.Context) Outcome
	Messages() []Message
	LastSources() []Source
	IsLoading() bool
	ErrorMessage() string
	RetryAfter() (time.Duration, bool)
	SessionID(ctx context.Context) string
	ClearMessages(ctx context.Context)
	ClearSession(ctx context.Context)
}
