package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/providers/bowen"
	"github.com/sandevgo/bowen/internal/service/history"
	"github.com/sandevgo/bowen/internal/service/session"
	"github.com/sandevgo/bowen/internal/storage/memory"
)

type fakeAPI struct {
	mu       sync.Mutex
	send     func(ctx context.Context, text, sessionID string) (*core.ChatResponse, error)
	sessions []string
}

func (f *fakeAPI) SendMessage(ctx context.Context, text, sessionID string) (*core.ChatResponse, error) {
	f.mu.Lock()
	f.sessions = append(f.sessions, sessionID)
	send := f.send
	f.mu.Unlock()
	return send(ctx, text, sessionID)
}

func (f *fakeAPI) GetActs(context.Context) ([]core.Act, error) {
	return nil, nil
}

func (f *fakeAPI) CheckHealth(context.Context) bool {
	return true
}

func (f *fakeAPI) Health(context.Context) (*core.HealthStatus, error) {
	return &core.HealthStatus{}, nil
}

func (f *fakeAPI) Search(context.Context, string, int) (*core.SearchResponse, error) {
	return &core.SearchResponse{}, nil
}

func answer(text string) func(context.Context, string, string) (*core.ChatResponse, error) {
	return func(context.Context, string, string) (*core.ChatResponse, error) {
		return &core.ChatResponse{
			Response:   text,
			Sources:    []core.Source{{ActTitle: "Employment Relations Act 2000", SectionNumber: "67"}},
			Disclaimer: "not legal advice",
		}, nil
	}
}

func fail(err error) func(context.Context, string, string) (*core.ChatResponse, error) {
	return func(context.Context, string, string) (*core.ChatResponse, error) {
		return nil, err
	}
}

// recordingStore logs the order of operations against the backing store.
type recordingStore struct {
	core.KeyValueStore
	mu  sync.Mutex
	ops []string
}

func (r *recordingStore) record(op string) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *recordingStore) Get(ctx context.Context, key string) (string, error) {
	r.record("get " + key)
	return r.KeyValueStore.Get(ctx, key)
}

func (r *recordingStore) Set(ctx context.Context, key, value string) error {
	r.record("set " + key)
	return r.KeyValueStore.Set(ctx, key, value)
}

type fixture struct {
	chat  *Chat
	api   *fakeAPI
	kv    core.KeyValueStore
	store *history.Store
	ids   *session.Provider
}

func newFixture(t *testing.T, send func(context.Context, string, string) (*core.ChatResponse, error)) *fixture {
	t.Helper()
	kv := memory.NewStore()
	api := &fakeAPI{send: send}
	store := history.NewStore(kv)
	ids := session.NewProvider(kv)
	return &fixture{
		chat:  New(context.Background(), api, store, ids),
		api:   api,
		kv:    kv,
		store: store,
		ids:   ids,
	}
}

func TestSend_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, answer("Two weeks notice."))

	out := f.chat.Send(ctx, "How much notice?")
	require.True(t, out.Accepted)
	assert.False(t, out.Failed())

	msgs := f.chat.Messages()
	require.Len(t, msgs, 2)
	require.NotNil(t, out.Answer)
	assert.Equal(t, msgs[1], *out.Answer)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "How much notice?"}, msgs[0])
	assert.Equal(t, core.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Two weeks notice.", msgs[1].Content)
	assert.Len(t, msgs[1].Sources, 1)

	assert.False(t, f.chat.IsLoading())
	assert.Empty(t, f.chat.ErrorMessage())
	assert.Equal(t, "not legal advice", f.chat.Disclaimer())
	assert.Equal(t, msgs[1].Sources, f.chat.LastSources())

	assert.Equal(t, msgs, f.store.Load(ctx), "conversation should be persisted")
}

func TestSend_UsesPersistedSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, answer("ok"))

	sid := f.chat.SessionID(ctx)
	f.chat.Send(ctx, "one")
	f.chat.Send(ctx, "two")

	assert.Equal(t, []string{sid, sid}, f.api.sessions)
}

func TestSend_FailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, answer("first"))
	require.True(t, f.chat.Send(ctx, "first question").Accepted)

	f.api.send = fail(errors.New("connection refused"))
	out := f.chat.Send(ctx, "second question")
	require.True(t, out.Accepted)
	assert.Nil(t, out.Answer)
	assert.Equal(t, bowen.GenericErrorMessage, out.Error)

	msgs := f.chat.Messages()
	assert.Len(t, msgs, 2, "failed turn must not be kept")
	assert.Equal(t, bowen.GenericErrorMessage, f.chat.ErrorMessage())
	assert.False(t, f.chat.IsLoading())
	assert.Equal(t, msgs, f.store.Load(ctx), "rollback should be persisted")

	_, ok := f.chat.RetryAfter()
	assert.False(t, ok)
}

func TestSend_ClassifiedError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fail(&bowen.APIError{
		Status:     503,
		Code:       bowen.CodeModelNotLoaded,
		Message:    "Search service unavailable",
		RetryAfter: 60,
	}))

	out := f.chat.Send(ctx, "hi")
	assert.Equal(t, "The legislation search is still initializing. Please try again in a moment.", out.Error)
	assert.Equal(t, time.Minute, out.RetryAfter)

	assert.Empty(t, f.chat.Messages())
	assert.Equal(t, out.Error, f.chat.ErrorMessage())

	wait, ok := f.chat.RetryAfter()
	assert.True(t, ok)
	assert.Equal(t, time.Minute, wait)
}

func TestSend_ErrorClearedOnNextSend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fail(errors.New("down")))

	f.chat.Send(ctx, "hi")
	require.NotEmpty(t, f.chat.ErrorMessage())

	f.api.send = answer("ok")
	f.chat.Send(ctx, "hi again")
	assert.Empty(t, f.chat.ErrorMessage())
}

func TestSend_Blank(t *testing.T) {
	f := newFixture(t, answer("ok"))

	assert.False(t, f.chat.Send(context.Background(), "   \n\t").Accepted)
	assert.Empty(t, f.chat.Messages())
	assert.Empty(t, f.api.sessions, "no request for blank input")
}

func TestSend_WhileLoadingIsNoop(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})

	f := newFixture(t, func(context.Context, string, string) (*core.ChatResponse, error) {
		close(started)
		<-release
		return &core.ChatResponse{Response: "done"}, nil
	})

	done := make(chan core.Outcome)
	go func() { done <- f.chat.Send(ctx, "slow question") }()

	<-started
	assert.True(t, f.chat.IsLoading())
	assert.False(t, f.chat.Send(ctx, "impatient").Accepted, "second send should be rejected")
	assert.Len(t, f.chat.Messages(), 1, "only the pending user turn is visible")

	close(release)
	out := <-done
	assert.True(t, out.Accepted)
	require.NotNil(t, out.Answer)
	assert.Equal(t, "done", out.Answer.Content)

	msgs := f.chat.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "slow question", msgs[0].Content)
	assert.Equal(t, "done", msgs[1].Content)
}

func TestClearMessages_KeepsSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, answer("ok"))

	sid := f.chat.SessionID(ctx)
	f.chat.Send(ctx, "hi")
	f.api.send = fail(errors.New("down"))
	f.chat.Send(ctx, "again")
	require.NotEmpty(t, f.chat.ErrorMessage())

	f.chat.ClearMessages(ctx)

	assert.Empty(t, f.chat.Messages())
	assert.Empty(t, f.chat.ErrorMessage())
	assert.Empty(t, f.store.Load(ctx))
	assert.Equal(t, sid, f.chat.SessionID(ctx))
	assert.False(t, f.chat.Retry(ctx).Accepted, "nothing left to retry")
}

func TestClearSession_NewSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, answer("ok"))

	sid := f.chat.SessionID(ctx)
	f.chat.Send(ctx, "hi")

	f.chat.ClearSession(ctx)

	assert.Empty(t, f.chat.Messages())
	assert.Empty(t, f.store.Load(ctx))
	assert.NotEqual(t, sid, f.chat.SessionID(ctx))
}

func TestClear_DropsLateResult(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})

	f := newFixture(t, func(context.Context, string, string) (*core.ChatResponse, error) {
		close(started)
		<-release
		return nil, errors.New("too late anyway")
	})
	f.chat.messages = []core.Message{{Role: core.RoleUser, Content: "older"}, {Role: core.RoleAssistant, Content: "answer"}}

	done := make(chan core.Outcome)
	go func() { done <- f.chat.Send(ctx, "in flight") }()

	<-started
	f.chat.ClearMessages(ctx)
	close(release)
	out := <-done

	assert.True(t, out.Discarded)
	assert.False(t, out.Failed(), "a dropped failure is not reported")

	assert.Empty(t, f.chat.Messages())
	assert.Empty(t, f.chat.ErrorMessage())
	assert.False(t, f.chat.IsLoading())
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fail(errors.New("down")))

	assert.False(t, f.chat.Retry(ctx).Accepted, "nothing failed yet")

	f.chat.Send(ctx, "what is the bond limit?")
	f.api.send = answer("four weeks")

	out := f.chat.Retry(ctx)
	require.True(t, out.Accepted)
	require.NotNil(t, out.Answer)
	assert.Equal(t, "four weeks", out.Answer.Content)

	msgs := f.chat.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "what is the bond limit?", msgs[0].Content)
	assert.False(t, f.chat.Retry(ctx).Accepted, "successful retry clears the pending input")
}

func TestNew_RestoresConversation(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	store := history.NewStore(kv)
	saved := []core.Message{
		{Role: core.RoleUser, Content: "hi"},
		{Role: core.RoleAssistant, Content: "kia ora"},
	}
	store.Save(ctx, saved)

	c := New(ctx, &fakeAPI{send: answer("ok")}, store, session.NewProvider(kv))
	assert.Equal(t, saved, c.Messages())
}

func TestNew_LoadsBeforeAnyWrite(t *testing.T) {
	ctx := context.Background()
	rec := &recordingStore{KeyValueStore: memory.NewStore()}
	_ = rec.KeyValueStore.Set(ctx, core.MessagesKey, `[{"role":"user","content":"kept"}]`)

	c := New(ctx, &fakeAPI{send: answer("ok")}, history.NewStore(rec), session.NewProvider(rec))
	c.Send(ctx, "next")

	require.NotEmpty(t, rec.ops)
	assert.Equal(t, "get "+core.MessagesKey, rec.ops[0])

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "kept", msgs[0].Content, "earlier history must not be overwritten")
}

func TestMessages_ReturnsCopy(t *testing.T) {
	f := newFixture(t, answer("ok"))
	f.chat.Send(context.Background(), "hi")

	msgs := f.chat.Messages()
	msgs[0].Content = "tampered"

	assert.Equal(t, "hi", f.chat.Messages()[0].Content)
}

func TestSend_OutcomeIsolatedFromLaterTurns(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})

	f := newFixture(t, func(context.Context, string, string) (*core.ChatResponse, error) {
		close(started)
		<-release
		return &core.ChatResponse{Response: "first answer"}, nil
	})

	done := make(chan core.Outcome)
	go func() { done <- f.chat.Send(ctx, "first") }()
	<-started
	close(release)
	out := <-done

	f.api.send = fail(errors.New("down"))
	f.chat.Send(ctx, "second")
	require.NotEmpty(t, f.chat.ErrorMessage())

	require.NotNil(t, out.Answer)
	assert.Equal(t, "first answer", out.Answer.Content, "earlier outcome must not see the later failure")
	assert.False(t, out.Failed())
}
