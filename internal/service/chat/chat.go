package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/providers/bowen"
	"github.com/sandevgo/bowen/internal/service/history"
	"github.com/sandevgo/bowen/internal/service/session"
	"github.com/sandevgo/bowen/pkg/log"
)

// Chat owns one conversation: it appends turns optimistically, rolls them
// back on failure and keeps the persisted copy in step. Safe for concurrent
// use; only one request can be in flight at a time.
type Chat struct {
	api   core.LegislationAPI
	store *history.Store
	ids   *session.Provider

	mu         sync.Mutex
	messages   []core.Message
	loaded     bool
	loading    bool
	errMsg     string
	retryAfter time.Duration
	lastFailed string
	disclaimer string
	// bumped on every clear so a late answer cannot land in a new conversation
	generation uint64
}

func New(ctx context.Context, api core.LegislationAPI, store *history.Store, ids *session.Provider) *Chat {
	c := &Chat{
		api:   api,
		store: store,
		ids:   ids,
	}

	msgs := store.Load(ctx)

	c.mu.Lock()
	c.messages = msgs
	c.loaded = true
	c.mu.Unlock()

	log.FromCtx(ctx).Debug().Int("messages", len(msgs)).Msg("conversation restored")
	return c
}

// Send submits text and reports what this call produced. Blank text or a
// request already in flight gives an Outcome that is not Accepted.
func (c *Chat) Send(ctx context.Context, text string) core.Outcome {
	if strings.TrimSpace(text) == "" {
		return core.Outcome{}
	}

	c.mu.Lock()
	if !c.loaded || c.loading {
		c.mu.Unlock()
		return core.Outcome{}
	}
	c.loading = true
	c.errMsg = ""
	c.retryAfter = 0
	c.messages = append(c.messages, core.Message{Role: core.RoleUser, Content: text})
	gen := c.generation
	c.save(ctx)
	c.mu.Unlock()

	sessionID := c.ids.GetOrCreate(ctx)
	resp, err := c.api.SendMessage(ctx, text, sessionID)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	logger := log.FromCtx(ctx)

	if gen != c.generation {
		logger.Debug().Msg("conversation cleared while waiting, dropping result")
		return core.Outcome{Accepted: true, Discarded: true}
	}

	if err != nil {
		logger.Warn().Err(err).Msg("chat request failed")
		if n := len(c.messages); n > 0 && c.messages[n-1].Role == core.RoleUser {
			c.messages = c.messages[:n-1]
		}
		c.errMsg, c.retryAfter = describe(err)
		c.lastFailed = text
		c.save(ctx)
		return core.Outcome{Accepted: true, Error: c.errMsg, RetryAfter: c.retryAfter}
	}

	answer := core.Message{
		Role:    core.RoleAssistant,
		Content: resp.Response,
		Sources: resp.Sources,
	}
	c.messages = append(c.messages, answer)
	c.lastFailed = ""
	if resp.Disclaimer != "" {
		c.disclaimer = resp.Disclaimer
	}
	c.save(ctx)
	return core.Outcome{Accepted: true, Answer: &answer}
}

// Retry resends the last input that failed.
func (c *Chat) Retry(ctx context.Context) core.Outcome {
	c.mu.Lock()
	text := c.lastFailed
	c.mu.Unlock()

	if text == "" {
		return core.Outcome{}
	}
	return c.Send(ctx, text)
}

func (c *Chat) Messages() []core.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]core.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastSources returns the citations of the latest answer.
func (c *Chat) LastSources() []core.Source {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == core.RoleAssistant {
			return c.messages[i].Sources
		}
	}
	return nil
}

func (c *Chat) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ErrorMessage is the text of the last failure, "" when there is none.
func (c *Chat) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// RetryAfter reports how long the service asked us to wait, if it did.
func (c *Chat) RetryAfter() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retryAfter, c.retryAfter > 0
}

// Disclaimer is the latest disclaimer the service attached to an answer.
func (c *Chat) Disclaimer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disclaimer
}

func (c *Chat) SessionID(ctx context.Context) string {
	return c.ids.GetOrCreate(ctx)
}

// ClearMessages empties the conversation and keeps the session.
func (c *Chat) ClearMessages(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
	c.store.Clear(ctx)
}

// ClearSession empties the conversation and forgets the session id, so the
// service starts from scratch on the next question.
func (c *Chat) ClearSession(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
	c.store.Clear(ctx)
	c.ids.Clear(ctx)
}

func (c *Chat) reset() {
	c.messages = []core.Message{}
	c.errMsg = ""
	c.retryAfter = 0
	c.lastFailed = ""
	c.generation++
}

// save must be called with mu held.
func (c *Chat) save(ctx context.Context) {
	if !c.loaded {
		return
	}
	c.store.Save(ctx, c.messages)
}

func describe(err error) (string, time.Duration) {
	var apiErr *bowen.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsRetryable() {
			return apiErr.UserMessage(), apiErr.RetryAfterDuration()
		}
		return apiErr.UserMessage(), 0
	}
	return bowen.GenericErrorMessage, 0
}
