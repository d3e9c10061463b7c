package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// ConversationService exposes the conversation ledger for display.
type ConversationService interface {
	// List returns all conversations, most recently updated first.
	List(ctx context.Context) ([]domain.Conversation, error)

	// Turns returns a conversation's turns, oldest first, with source
	// chunk references hydrated for display. References whose chunk no
	// longer exists are returned with Available set to false rather
	// than failing.
	Turns(ctx context.Context, conversationID string) ([]Turn, error)
}

// Turn is a hydrated question/answer pair for display.
type Turn struct {
	ID        string
	Question  string
	Answer    string
	CreatedAt time.Time
	Sources   []domain.SourceRef
}
