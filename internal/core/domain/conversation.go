package domain

import (
	"fmt"
	"strings"
	"time"
)

// Conversation is an ordered sequence of question/answer turns.
// Conversations are created lazily on the first question and are never
// deleted by the core; turns are only ever appended.
type Conversation struct {
	// ID is the unique identifier for the conversation.
	ID string

	// CreatedAt is when the conversation was started.
	CreatedAt time.Time

	// UpdatedAt is when the last turn was appended.
	UpdatedAt time.Time
}

// QuestionAnswer is a single turn in a conversation: the user's question,
// the generated answer, and the chunks the answer was grounded in.
type QuestionAnswer struct {
	// ID is the unique identifier for the turn.
	ID string

	// ConversationID links to the owning Conversation.
	ConversationID string

	// Question is the user's question text.
	Question string

	// Answer is the generated answer text.
	Answer string

	// SourceChunkIDs lists, in relevance order, the chunks that were
	// actually supplied to the generator for this answer. IDs may dangle
	// after their owning document is deleted; readers must tolerate that.
	SourceChunkIDs []string

	// CreatedAt is when the turn was persisted.
	CreatedAt time.Time
}

// NewQuestionAnswer validates and constructs a turn.
func NewQuestionAnswer(id, conversationID, question, answer string, sourceChunkIDs []string) (*QuestionAnswer, error) {
	if id == "" || conversationID == "" {
		return nil, fmt.Errorf("question answer identifiers: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question text: %w", ErrInvalidInput)
	}

	refs := make([]string, len(sourceChunkIDs))
	copy(refs, sourceChunkIDs)

	return &QuestionAnswer{
		ID:             id,
		ConversationID: conversationID,
		Question:       question,
		Answer:         answer,
		SourceChunkIDs: refs,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
