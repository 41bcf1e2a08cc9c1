package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// stored in place of a reply when the provider call fails
const FallbackReply = "[Gemini API error]"

var ErrNotConfigured = errors.New("gemini api key not configured")

// generates an assistant reply for a prompt and prior turns
type Replier interface {
	Reply(ctx context.Context, prompt string, history []Turn) (string, error)
}

// receives the outcome of every provider call, implemented by the metrics package
type CallObserver interface {
	ObserveGeminiCall(err error, duration time.Duration)
}

// one prior message of the conversation
type Turn struct {
	// "user" or "model"
	Role string
	Text string
}

type GeminiConfig struct {
	APIKey  string
	Model   string // e.g., "gemini-2.0-flash"
	BaseURL string // defaults to the public generativelanguage endpoint

	// pacing for outbound calls
	RequestsPerSecond float64
	Burst             int

	HTTPClient *http.Client
	Observer   CallObserver
}

type GeminiClient struct {
	config     GeminiConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}
