package driven

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// ConversationStore persists conversations and their turns.
// The turn list is append-only; implementations must preserve insertion
// order and never reorder or rewrite past turns.
type ConversationStore interface {
	// SaveConversation stores a new conversation.
	SaveConversation(ctx context.Context, conv *domain.Conversation) error

	// GetConversation retrieves a conversation by ID.
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)

	// ListConversations returns all conversations, most recently
	// updated first.
	ListConversations(ctx context.Context) ([]domain.Conversation, error)

	// AppendTurn appends a turn to its conversation and bumps the
	// conversation's UpdatedAt. The conversation must already exist.
	AppendTurn(ctx context.Context, qa *domain.QuestionAnswer) error

	// ListTurns returns a conversation's turns, oldest first.
	ListTurns(ctx context.Context, conversationID string) ([]domain.QuestionAnswer, error)
}
