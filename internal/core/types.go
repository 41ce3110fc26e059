package core

const (
	BowenName          = "Bowen"
	BowenUserAgent     = "Bowen-Client/0.1"
	BowenRepositoryURL = "https://github.com/sandevgo/bowen"
	BowenVersion       = "0.1.0"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Source is a citation pointing at a provision of legislation.
type Source struct {
	ActTitle       string  `json:"act_title"`
	SectionNumber  string  `json:"section_number"`
	SectionHeading string  `json:"section_heading"`
	URL            string  `json:"url"`
	Excerpt        string  `json:"excerpt"`
	Score          float64 `json:"score"`
}

type Message struct {
	Role    Role     `json:"role"`
	Content string   `json:"content"`
	Sources []Source `json:"sources,omitempty"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Response   string   `json:"response"`
	Sources    []Source `json:"sources"`
	Disclaimer string   `json:"disclaimer"`
}

type Act struct {
	ShortName string   `json:"short_name"`
	Title     string   `json:"title"`
	Year      int      `json:"year"`
	Topics    []string `json:"topics"`
	URL       string   `json:"url"`
}

type ActsResponse struct {
	Acts []Act `json:"acts"`
}

type HealthStatus struct {
	Status           string `json:"status"`
	EmbeddingsLoaded bool   `json:"embeddings_loaded"`
	ModelLoaded      bool   `json:"model_loaded"`
	AnthropicReady   bool   `json:"anthropic_ready"`
	SupabaseReady    bool   `json:"supabase_ready"`
	Chunks           int    `json:"chunks"`
	HasFailures      bool   `json:"has_failures"`
}

// Ready reports whether the service can answer questions.
func (h HealthStatus) Ready() bool {
	return h.EmbeddingsLoaded && h.ModelLoaded && h.AnthropicReady
}

type SearchResult struct {
	ActTitle       string  `json:"act_title"`
	SectionNumber  string  `json:"section_number"`
	SectionHeading string  `json:"section_heading"`
	Text           string  `json:"text"`
	Score          float64 `json:"score"`
	URL            string  `json:"url"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

type VersionInfo struct {
	APIVersion string   `json:"api_version"`
	AppVersion string   `json:"app_version"`
	Endpoints  []string `json:"endpoints"`
}
