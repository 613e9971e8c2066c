// Package llm provides chat-completion clients for OpenAI-compatible and
// Anthropic model endpoints.
package llm

import (
	"context"
)

// Message roles understood by both providers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn of conversation history.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest describes one chat-completion call.
type CompletionRequest struct {
	// SystemPrompt sets the system message. May be empty.
	SystemPrompt string

	// Messages is the conversation so far, oldest first. The last message
	// is normally the user turn being answered.
	Messages []Message

	// Temperature controls sampling. Zero keeps classification calls
	// deterministic.
	Temperature float64
}

// CompletionResult is the model's reply plus usage stats.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// LLMClient defines the interface for chat-completion operations.
// Use this interface for dependency injection to enable mocking in tests.
type LLMClient interface {
	// Complete executes a single chat-completion call.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}

// Ensure both provider clients implement LLMClient at compile time.
var (
	_ LLMClient = (*Client)(nil)
	_ LLMClient = (*AnthropicClient)(nil)
)
