package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/bowen/internal/core"
)

// Backend is an in-process stand-in for the Bowen service. It mounts the
// same handlers under /api/v1 and the root, like the real service.
type Backend struct {
	*httptest.Server

	mu sync.Mutex
	// V1Down makes every /api/v1 route answer 502, forcing the fallback.
	V1Down bool
	// Unavailable makes /chat answer 503 MODEL_NOT_LOADED.
	Unavailable bool

	requests []core.ChatRequest
	v1Hits   int
	rootHits int
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{}
	api := http.NewServeMux()
	api.HandleFunc("/chat", b.chat)
	api.HandleFunc("/acts", b.acts)
	api.HandleFunc("/health", b.health)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", b.count(true, api)))
	mux.Handle("/", b.count(false, api))

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

// Config points a client at the backend with the default prefix.
func (b *Backend) Config() core.APIConfig {
	return backendConfig{host: b.URL}
}

func (b *Backend) SetV1Down(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.V1Down = down
}

func (b *Backend) SetUnavailable(unavailable bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Unavailable = unavailable
}

// Requests returns the chat requests received so far.
func (b *Backend) Requests() []core.ChatRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]core.ChatRequest(nil), b.requests...)
}

// Hits returns request counts for the /api/v1 and root mounts.
func (b *Backend) Hits() (v1, root int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.v1Hits, b.rootHits
}

func (b *Backend) count(v1 bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		down := b.V1Down
		if v1 {
			b.v1Hits++
		} else {
			b.rootHits++
		}
		b.mu.Unlock()

		if v1 && down {
			http.Error(w, "bad gateway", http.StatusBadGateway)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) chat(w http.ResponseWriter, r *http.Request) {
	var req core.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "invalid body"})
		return
	}

	b.mu.Lock()
	b.requests = append(b.requests, req)
	unavailable := b.Unavailable
	b.mu.Unlock()

	if unavailable {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"detail": map[string]any{
				"error":       "Model not loaded",
				"code":        "MODEL_NOT_LOADED",
				"retry_after": 60,
			},
		})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"detail": map[string]any{"error": "Message cannot be empty", "code": "EMPTY_MESSAGE"},
		})
		return
	}

	writeJSON(w, http.StatusOK, core.ChatResponse{
		Response: "Answer to: " + req.Message,
		Sources: []core.Source{{
			ActTitle:       "Residential Tenancies Act 1986",
			SectionNumber:  "18",
			SectionHeading: "Bond",
			URL:            "https://www.legislation.govt.nz/act/public/1986/0120/latest/DLM95060.html",
			Excerpt:        "The landlord shall not require a bond exceeding 4 weeks' rent.",
			Score:          0.91,
		}},
		Disclaimer: "This is general information, not legal advice.",
	})
}

func (b *Backend) acts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.ActsResponse{Acts: core.FallbackActs[:3]})
}

func (b *Backend) health(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	ready := !b.Unavailable
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, core.HealthStatus{
		Status:           "healthy",
		EmbeddingsLoaded: true,
		ModelLoaded:      ready,
		AnthropicReady:   true,
		Chunks:           1200,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type backendConfig struct {
	host string
}

func (c backendConfig) GetHost() string            { return c.host }
func (c backendConfig) GetPrimaryBaseURL() string  { return c.host + "/api/v1" }
func (c backendConfig) GetFallbackBaseURL() string { return c.host }
func (c backendConfig) GetTimeout() time.Duration  { return 5 * time.Second }
