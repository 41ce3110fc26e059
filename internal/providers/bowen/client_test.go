package bowen

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/pkg/retry"
)

type testConfig struct {
	primary  string
	fallback string
}

func (c testConfig) GetHost() string            { return c.fallback }
func (c testConfig) GetPrimaryBaseURL() string  { return c.primary }
func (c testConfig) GetFallbackBaseURL() string { return c.fallback }
func (c testConfig) GetTimeout() time.Duration  { return 5 * time.Second }

// newServer serves the versioned API under /api/v1 and the legacy API at the
// root, counting hits on each.
func newServer(t *testing.T, v1, legacy http.HandlerFunc) (*Client, *int32, *int32) {
	t.Helper()

	var v1Hits, legacyHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&v1Hits, 1)
		v1(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&legacyHits, 1)
		legacy(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClient(testConfig{primary: srv.URL + "/api/v1", fallback: srv.URL}), &v1Hits, &legacyHits
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func chatOK(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, core.ChatResponse{
			Response: text,
			Sources: []core.Source{{
				ActTitle:      "Residential Tenancies Act 1986",
				SectionNumber: "18",
				Score:         0.9,
			}},
			Disclaimer: "general information only",
		})
	}
}

func unexpected(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	}
}

func TestSendMessage_Primary(t *testing.T) {
	var got core.ChatRequest
	c, v1, legacy := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, core.BowenUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		chatOK("Four weeks rent.")(w, r)
	}, unexpected(t))

	resp, err := c.SendMessage(context.Background(), "bond?", "sid-1")
	require.NoError(t, err)

	assert.Equal(t, "Four weeks rent.", resp.Response)
	assert.Len(t, resp.Sources, 1)
	assert.Equal(t, "general information only", resp.Disclaimer)
	assert.Equal(t, core.ChatRequest{Message: "bond?", SessionID: "sid-1"}, got)
	assert.EqualValues(t, 1, *v1)
	assert.EqualValues(t, 0, *legacy)
}

func TestSendMessage_OmitsEmptySession(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, has := raw["session_id"]
		assert.False(t, has, "session_id should be omitted when empty")
		chatOK("ok")(w, r)
	}, unexpected(t))

	_, err := c.SendMessage(context.Background(), "hi", "")
	require.NoError(t, err)
}

func TestSendMessage_PrimaryUnreachableUsesFallback(t *testing.T) {
	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		chatOK("from fallback")(w, r)
	}))
	defer legacy.Close()

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	c := NewClient(testConfig{primary: deadURL + "/api/v1", fallback: legacy.URL})

	resp, err := c.SendMessage(context.Background(), "hi", "sid")
	require.NoError(t, err)
	assert.Equal(t, "from fallback", resp.Response)
}

func TestSendMessage_Primary5xxUsesFallback(t *testing.T) {
	c, v1, legacy := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "boom", "code": "INTERNAL_ERROR"})
	}, chatOK("from fallback"))

	resp, err := c.SendMessage(context.Background(), "hi", "sid")
	require.NoError(t, err)
	assert.Equal(t, "from fallback", resp.Response)
	assert.EqualValues(t, 1, *v1)
	assert.EqualValues(t, 1, *legacy)
}

func TestSendMessage_Primary4xxIsAuthoritative(t *testing.T) {
	c, _, legacy := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"detail": map[string]any{"error": "No such route", "code": "NOT_FOUND"},
		})
	}, unexpected(t))

	_, err := c.SendMessage(context.Background(), "hi", "sid")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "No such route", apiErr.UserMessage())
	assert.EqualValues(t, 0, *legacy)
}

func TestSendMessage_FallbackResultIsFinal(t *testing.T) {
	c, v1, legacy := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"detail": map[string]any{
				"error":       "Search service unavailable",
				"code":        "EMBEDDINGS_NOT_LOADED",
				"retry_after": 5,
			},
		})
	})

	_, err := c.SendMessage(context.Background(), "hi", "sid")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.Status)
	assert.True(t, apiErr.IsRetryable())
	assert.Equal(t, 5, apiErr.RetryAfter)
	assert.Equal(t, 5*time.Second, apiErr.RetryAfterDuration())
	assert.EqualValues(t, 1, *v1)
	assert.EqualValues(t, 1, *legacy)
}

func TestSendMessage_503WithoutRetryAfter(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "down", "code": "ANTHROPIC_UNAVAILABLE"})
	}, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "down", "code": "ANTHROPIC_UNAVAILABLE"})
	})

	_, err := c.SendMessage(context.Background(), "hi", "sid")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.False(t, apiErr.IsRetryable())
}

func TestSendMessage_BothUnreachable(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	c := NewClient(testConfig{primary: deadURL + "/api/v1", fallback: deadURL})

	_, err := c.SendMessage(context.Background(), "hi", "sid")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not API errors")
}

func TestSendMessage_CanceledContextSkipsFallback(t *testing.T) {
	release := make(chan struct{})
	c, _, legacy := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}, unexpected(t))
	// runs before the server's Close, which waits for this handler
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.SendMessage(ctx, "hi", "sid")
	require.Error(t, err)
	assert.EqualValues(t, 0, *legacy)
}

func TestGetActs(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/acts", r.URL.Path)
		writeJSON(w, http.StatusOK, core.ActsResponse{Acts: []core.Act{
			{ShortName: "RTA", Title: "Residential Tenancies Act 1986", Year: 1986, Topics: []string{"tenancy"}},
		}})
	}, unexpected(t))

	acts, err := c.GetActs(context.Background())
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "RTA", acts[0].ShortName)
	assert.Equal(t, 1986, acts[0].Year)
}

func TestGetActs_LegacyTitleList(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []string{"Privacy Act 2020", "Fair Trading Act 1986"})
	})

	acts, err := c.GetActs(context.Background())
	require.NoError(t, err)
	require.Len(t, acts, 2)
	assert.Equal(t, "Privacy Act 2020", acts[0].Title)
}

func TestCheckHealth(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, core.HealthStatus{Status: "healthy"})
	}, unexpected(t))
	assert.True(t, c.CheckHealth(context.Background()))

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	down := NewClient(testConfig{primary: deadURL + "/api/v1", fallback: deadURL})
	assert.False(t, down.CheckHealth(context.Background()))
}

func TestCheckHealth_ErrorStatus(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.False(t, c.CheckHealth(context.Background()))
}

func TestSearch(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		assert.Equal(t, "minimum wage", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, core.SearchResponse{
			Query:   "minimum wage",
			Results: []core.SearchResult{{ActTitle: "Minimum Wage Act 1983", SectionNumber: "4"}},
		})
	}, unexpected(t))

	resp, err := c.Search(context.Background(), "minimum wage", 3)
	require.NoError(t, err)
	assert.Equal(t, "minimum wage", resp.Query)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Minimum Wage Act 1983", resp.Results[0].ActTitle)
}

func TestVersion_NoFallback(t *testing.T) {
	c, _, legacy := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, unexpected(t))

	_, err := c.Version(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 0, *legacy)
}

func TestWaitReady(t *testing.T) {
	var calls int32
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusOK, core.HealthStatus{
			Status:           "healthy",
			EmbeddingsLoaded: n >= 3,
			ModelLoaded:      true,
			AnthropicReady:   true,
		})
	}, unexpected(t))

	r := retry.NewRetrier(&retry.Config{
		MaxRetries:    5,
		BackoffFactor: 1,
		InitialDelay:  time.Millisecond,
		MaxDelay:      10 * time.Millisecond,
	})

	h, err := c.WaitReady(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, h.Ready())
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestWaitReady_GivesUp(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, core.HealthStatus{Status: "healthy"})
	}, unexpected(t))

	r := retry.NewRetrier(&retry.Config{
		MaxRetries:    2,
		BackoffFactor: 1,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
	})

	h, err := c.WaitReady(context.Background(), r)
	assert.ErrorIs(t, err, ErrNotReady)
	require.NotNil(t, h)
	assert.False(t, h.Ready())
}
