package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Ensure ConversationService implements the interface.
var _ driving.ConversationService = (*ConversationService)(nil)

// ConversationService exposes the conversation ledger for display.
type ConversationService struct {
	convStore driven.ConversationStore
	docStore  driven.DocumentStore
}

// NewConversationService creates a new conversation service.
func NewConversationService(convStore driven.ConversationStore, docStore driven.DocumentStore) *ConversationService {
	return &ConversationService{
		convStore: convStore,
		docStore:  docStore,
	}
}

// List returns all conversations, most recently updated first.
func (s *ConversationService) List(ctx context.Context) ([]domain.Conversation, error) {
	return s.convStore.ListConversations(ctx)
}

// Turns returns a conversation's turns, oldest first, with source
// references hydrated. A reference whose chunk has been deleted since
// the answer was generated is kept in place with Available false: past
// attributions are never edited, only rendered as unavailable.
func (s *ConversationService) Turns(ctx context.Context, conversationID string) ([]driving.Turn, error) {
	if _, err := s.convStore.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	qas, err := s.convStore.ListTurns(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list turns for conversation %s: %w", conversationID, err)
	}

	turns := make([]driving.Turn, 0, len(qas))
	for _, qa := range qas {
		sources := make([]domain.SourceRef, 0, len(qa.SourceChunkIDs))
		for _, chunkID := range qa.SourceChunkIDs {
			sources = append(sources, s.hydrateRef(ctx, chunkID))
		}
		turns = append(turns, driving.Turn{
			ID:        qa.ID,
			Question:  qa.Question,
			Answer:    qa.Answer,
			CreatedAt: qa.CreatedAt,
			Sources:   sources,
		})
	}

	return turns, nil
}

// hydrateRef resolves a chunk reference for display, tolerating
// dangling references.
func (s *ConversationService) hydrateRef(ctx context.Context, chunkID string) domain.SourceRef {
	chunk, err := s.docStore.GetChunk(ctx, chunkID)
	if err != nil {
		// Store trouble degrades the same way as a deleted source, but
		// it is worth a trace; a dangling reference is expected silence.
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Could not resolve source chunk %s: %v", chunkID, err)
		}
		return domain.SourceRef{ChunkID: chunkID}
	}

	ref := domain.SourceRef{
		ChunkID:    chunkID,
		ChunkIndex: chunk.Index,
		Preview:    Preview(chunk.Content),
		Available:  true,
	}

	doc, err := s.docStore.GetDocument(ctx, chunk.DocumentID)
	if err == nil {
		ref.DocumentFilename = doc.Filename
	}

	return ref
}
