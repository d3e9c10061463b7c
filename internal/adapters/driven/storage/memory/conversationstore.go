package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure ConversationStore implements the interface.
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore is an in-memory implementation of driven.ConversationStore.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]domain.Conversation
	turns         map[string][]domain.QuestionAnswer
}

// NewConversationStore creates a new in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]domain.Conversation),
		turns:         make(map[string][]domain.QuestionAnswer),
	}
}

// SaveConversation stores a new conversation.
func (s *ConversationStore) SaveConversation(_ context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conv.ID] = *conv
	return nil
}

// GetConversation retrieves a conversation by ID.
func (s *ConversationStore) GetConversation(_ context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &conv, nil
}

// ListConversations returns all conversations, most recently updated first.
func (s *ConversationStore) ListConversations(_ context.Context) ([]domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Conversation, 0, len(s.conversations))
	for id := range s.conversations {
		result = append(result, s.conversations[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// AppendTurn appends a turn to its conversation and bumps UpdatedAt.
func (s *ConversationStore) AppendTurn(_ context.Context, qa *domain.QuestionAnswer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[qa.ConversationID]
	if !ok {
		return domain.ErrNotFound
	}
	stored := *qa
	stored.SourceChunkIDs = append([]string(nil), qa.SourceChunkIDs...)
	s.turns[qa.ConversationID] = append(s.turns[qa.ConversationID], stored)
	conv.UpdatedAt = time.Now().UTC()
	s.conversations[qa.ConversationID] = conv
	return nil
}

// ListTurns returns a conversation's turns in insertion order.
func (s *ConversationStore) ListTurns(_ context.Context, conversationID string) ([]domain.QuestionAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns, ok := s.turns[conversationID]
	if !ok {
		return nil, nil
	}
	result := make([]domain.QuestionAnswer, len(turns))
	copy(result, turns)
	return result, nil
}
