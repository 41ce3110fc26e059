package bowen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   APIError
	}{
		{
			name:   "top level payload",
			status: 503,
			body:   `{"error":"Search service unavailable","code":"MODEL_NOT_LOADED","detail":"still loading","retry_after":5}`,
			want:   APIError{Status: 503, Code: CodeModelNotLoaded, Message: "Search service unavailable", Detail: "still loading", RetryAfter: 5},
		},
		{
			name:   "nested under detail",
			status: 400,
			body:   `{"detail":{"error":"Message cannot be empty","code":"EMPTY_MESSAGE","detail":"Please provide a non-empty message"}}`,
			want:   APIError{Status: 400, Code: CodeEmptyMessage, Message: "Message cannot be empty", Detail: "Please provide a non-empty message"},
		},
		{
			name:   "fractional retry after rounds up",
			status: 503,
			body:   `{"detail":{"error":"x","code":"ANTHROPIC_UNAVAILABLE","retry_after":1.5}}`,
			want:   APIError{Status: 503, Code: CodeAnthropicUnavail, Message: "x", RetryAfter: 2},
		},
		{
			name:   "framework string detail",
			status: 404,
			body:   `{"detail":"Not Found"}`,
			want:   APIError{Status: 404, Code: CodeUnknown, Message: "Not Found"},
		},
		{
			name:   "error field without code",
			status: 500,
			body:   `{"error":"boom"}`,
			want:   APIError{Status: 500, Code: CodeUnknown, Message: "boom"},
		},
		{
			name:   "validation list",
			status: 422,
			body:   `{"detail":[{"loc":["body","message"],"msg":"field required"}]}`,
			want:   APIError{Status: 422, Code: CodeUnknown, Message: "Unprocessable Entity"},
		},
		{
			name:   "plain text body",
			status: 502,
			body:   "upstream connect error",
			want:   APIError{Status: 502, Code: CodeUnknown, Message: "upstream connect error"},
		},
		{
			name:   "empty body",
			status: 500,
			body:   "",
			want:   APIError{Status: 500, Code: CodeUnknown, Message: "Internal Server Error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestAPIError_IsRetryable(t *testing.T) {
	assert.True(t, (&APIError{Status: 503, RetryAfter: 5}).IsRetryable())
	assert.False(t, (&APIError{Status: 503}).IsRetryable())
	assert.False(t, (&APIError{Status: 500, RetryAfter: 5}).IsRetryable())
	assert.False(t, (&APIError{Status: 429, RetryAfter: 5}).IsRetryable())
}

func TestAPIError_UserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  APIError
		want string
	}{
		{"model", APIError{Code: CodeModelNotLoaded, Detail: "raw"}, "The legislation search is still initializing. Please try again in a moment."},
		{"embeddings", APIError{Code: CodeEmbeddingsNotLoaded}, "The legislation search is still initializing. Please try again in a moment."},
		{"anthropic", APIError{Code: CodeAnthropicUnavail}, "The AI service is temporarily unavailable. Please try again shortly."},
		{"empty", APIError{Code: CodeEmptyMessage}, "Please enter a message."},
		{"session", APIError{Code: CodeInvalidSessionID}, "Your session is no longer valid. Please start a new session."},
		{"unknown code uses detail", APIError{Code: "RATE_LIMITED", Message: "Too many", Detail: "Slow down please"}, "Slow down please"},
		{"unknown code uses message", APIError{Code: "RATE_LIMITED", Message: "Too many"}, "Too many"},
		{"nothing to show", APIError{Code: CodeUnknown}, GenericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.UserMessage())
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Status: 400, Code: CodeEmptyMessage, Message: "Message cannot be empty", Detail: "provide text"}
	assert.Equal(t, "bowen api 400 EMPTY_MESSAGE: Message cannot be empty: provide text", err.Error())
}
