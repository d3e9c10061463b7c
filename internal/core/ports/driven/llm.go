package driven

import "context"

// LLMService is the generation backend: an opaque text-in/text-out
// service. The core never inspects or constrains what the model does
// beyond the prompt it supplies.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (and API-compatible services)
type LLMService interface {
	// Chat conducts a single exchange: a system instruction plus user
	// messages in, generated text out. Implementations must honour
	// context cancellation and deadlines.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in an exchange.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures generation behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
