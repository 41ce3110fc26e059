package bowen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sandevgo/bowen/pkg/conv"
)

const maxBodyText = 200

// Error codes the service is known to send. Anything else passes through.
const (
	CodeEmptyMessage        = "EMPTY_MESSAGE"
	CodeInvalidSessionID    = "INVALID_SESSION_ID"
	CodeInvalidQuery        = "INVALID_QUERY"
	CodeEmbeddingsNotLoaded = "EMBEDDINGS_NOT_LOADED"
	CodeModelNotLoaded      = "MODEL_NOT_LOADED"
	CodeAnthropicUnavail    = "ANTHROPIC_UNAVAILABLE"
	CodeUnknown             = "UNKNOWN_ERROR"
)

// GenericErrorMessage is shown when a failure carries nothing more useful.
const GenericErrorMessage = "Failed to get a response. Please check if the backend is running and try again."

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status     int
	Code       string
	Message    string
	Detail     string
	RetryAfter int // seconds, 0 when the service sent none
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("bowen api %d %s: %s", e.Status, e.Code, msg)
}

// IsRetryable reports whether the service asked the caller to come back later.
func (e *APIError) IsRetryable() bool {
	return e.Status == http.StatusServiceUnavailable && e.RetryAfter > 0
}

func (e *APIError) RetryAfterDuration() time.Duration {
	return time.Duration(e.RetryAfter) * time.Second
}

// UserMessage turns the error into text fit for the person asking.
func (e *APIError) UserMessage() string {
	switch e.Code {
	case CodeModelNotLoaded, CodeEmbeddingsNotLoaded:
		return "The legislation search is still initializing. Please try again in a moment."
	case CodeAnthropicUnavail:
		return "The AI service is temporarily unavailable. Please try again shortly."
	case CodeEmptyMessage:
		return "Please enter a message."
	case CodeInvalidSessionID:
		return "Your session is no longer valid. Please start a new session."
	}

	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return GenericErrorMessage
}

type errorPayload struct {
	Error      string   `json:"error"`
	Code       string   `json:"code"`
	Detail     string   `json:"detail"`
	RetryAfter *float64 `json:"retry_after"`
}

func (p errorPayload) toAPIError(status int) *APIError {
	e := &APIError{
		Status:  status,
		Code:    p.Code,
		Message: p.Error,
		Detail:  p.Detail,
	}
	if p.RetryAfter != nil && *p.RetryAfter > 0 {
		e.RetryAfter = int(math.Ceil(*p.RetryAfter))
	}
	return e
}

// parseAPIError reads {error, code, detail?, retry_after?} either at the top
// level or nested under "detail", the way FastAPI wraps HTTPException bodies.
func parseAPIError(status int, body []byte) *APIError {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return unknownError(status, plainBody(body))
	}

	if _, ok := fields["code"]; ok {
		var p errorPayload
		if err := json.Unmarshal(body, &p); err == nil && p.Code != "" {
			return p.toAPIError(status)
		}
	}

	if raw, ok := fields["detail"]; ok {
		raw = bytes.TrimSpace(raw)
		switch {
		case len(raw) > 0 && raw[0] == '{':
			var p errorPayload
			if err := json.Unmarshal(raw, &p); err == nil && p.Code != "" {
				return p.toAPIError(status)
			}
		case len(raw) > 0 && raw[0] == '"':
			var s string
			if err := json.Unmarshal(raw, &s); err == nil && s != "" {
				return unknownError(status, s)
			}
		}
	}

	if raw, ok := fields["error"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return unknownError(status, s)
		}
	}

	return unknownError(status, "")
}

func unknownError(status int, msg string) *APIError {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{
		Status:  status,
		Code:    CodeUnknown,
		Message: msg,
	}
}

// plainBody keeps what a proxy or load balancer put in a non-JSON body,
// stripped of markup.
func plainBody(body []byte) string {
	return conv.Truncate(conv.PlainText(string(body)), maxBodyText)
}
