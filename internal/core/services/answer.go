package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// NoGroundingAnswer is the deterministic answer returned when retrieval
// finds no relevant chunks. The generation backend is not called in that
// case; the turn is still persisted with an empty source set.
const NoGroundingAnswer = "No relevant document content found to answer the question."

// DefaultGenerationTimeout bounds the external generation call.
const DefaultGenerationTimeout = 120 * time.Second

// answerTemperature and answerMaxTokens are the fixed generation
// parameters for grounded answers.
const (
	answerTemperature = 0.3
	answerMaxTokens   = 1000
)

// AnswerOption configures the answer service.
type AnswerOption func(*AnswerService)

// WithTopK sets how many chunks retrieval feeds the prompt builder.
func WithTopK(k int) AnswerOption {
	return func(s *AnswerService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithGenerationTimeout bounds the external generation call.
func WithGenerationTimeout(d time.Duration) AnswerOption {
	return func(s *AnswerService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// AnswerService coordinates the question answering pipeline:
// retrieval, prompt assembly, generation, and persistence.
//
// Each request walks received -> retrieving -> generating -> persisting
// -> completed; a failure in any middle stage surfaces as a
// *domain.PipelineError and persists nothing.
type AnswerService struct {
	retrieval *RetrievalService
	prompts   *PromptBuilder
	llm       driven.LLMService
	convStore driven.ConversationStore

	topK    int
	timeout time.Duration

	// convLocks serialises appends per conversation so concurrent
	// questions on one conversation cannot interleave their turns.
	// Different conversations proceed independently.
	mu        sync.Mutex
	convLocks map[string]*sync.Mutex
}

// NewAnswerService creates a new answer service.
func NewAnswerService(
	retrieval *RetrievalService,
	prompts *PromptBuilder,
	llm driven.LLMService,
	convStore driven.ConversationStore,
	opts ...AnswerOption,
) *AnswerService {
	s := &AnswerService{
		retrieval: retrieval,
		prompts:   prompts,
		llm:       llm,
		convStore: convStore,
		topK:      DefaultTopK,
		timeout:   DefaultGenerationTimeout,
		convLocks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer runs the full pipeline for one question.
func (s *AnswerService) Answer(ctx context.Context, question, conversationID string) (*domain.AnswerResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is required: %w", domain.ErrInvalidInput)
	}

	logger.Section("Answer Pipeline")
	logger.Debug("Question: %q, conversation: %q", question, conversationID)

	conv, err := s.resolveConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	// Stage: retrieving.
	ranked, err := s.retrieval.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, &domain.PipelineError{
			Stage:          domain.StageRetrieving,
			ConversationID: conv.ID,
			Retriable:      true,
			Err:            err,
		}
	}

	if len(ranked) == 0 {
		logger.Info("No relevant chunks; answering without calling the backend")
		return s.persistTurn(ctx, conv, question, NoGroundingAnswer, nil, nil, false)
	}

	messages, emitted := s.prompts.Build(question, ranked)

	// Stage: generating. The external call is the pipeline's only
	// suspension point; it is bounded by the configured timeout and
	// honours caller cancellation.
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.llm.Chat(genCtx, messages, driven.ChatOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return nil, &domain.PipelineError{
			Stage:          domain.StageGenerating,
			ConversationID: conv.ID,
			Retriable:      generationRetriable(err),
			Err:            err,
		}
	}
	answer = strings.TrimSpace(answer)
	logger.Debug("Generated %d characters from model %s", len(answer), s.llm.ModelName())

	return s.persistTurn(ctx, conv, question, answer, emitted, ranked, true)
}

// resolveConversation loads the conversation, creating one when the id
// is empty or unknown.
func (s *AnswerService) resolveConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	if id != "" {
		conv, err := s.convStore.GetConversation(ctx, id)
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.PipelineError{
				Stage:          domain.StageReceived,
				ConversationID: id,
				Retriable:      true,
				Err:            err,
			}
		}
		logger.Debug("Conversation %s unknown, starting a new one", id)
	}

	now := time.Now().UTC()
	conv := &domain.Conversation{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.convStore.SaveConversation(ctx, conv); err != nil {
		return nil, &domain.PipelineError{
			Stage:          domain.StageReceived,
			ConversationID: conv.ID,
			Retriable:      true,
			Err:            err,
		}
	}
	logger.Debug("Created conversation %s", conv.ID)
	return conv, nil
}

// persistTurn appends the turn to the conversation and builds the
// result. Appends to a single conversation are serialised; a store
// failure here is fatal for the whole request, uniformly.
func (s *AnswerService) persistTurn(
	ctx context.Context,
	conv *domain.Conversation,
	question, answer string,
	emitted []string,
	ranked []domain.ScoredChunk,
	grounded bool,
) (*domain.AnswerResult, error) {
	qa, err := domain.NewQuestionAnswer(uuid.New().String(), conv.ID, question, answer, emitted)
	if err != nil {
		return nil, &domain.PipelineError{
			Stage:          domain.StagePersisting,
			ConversationID: conv.ID,
			Retriable:      false,
			Err:            err,
		}
	}

	lock := s.conversationLock(conv.ID)
	lock.Lock()
	err = s.convStore.AppendTurn(ctx, qa)
	lock.Unlock()
	if err != nil {
		return nil, &domain.PipelineError{
			Stage:          domain.StagePersisting,
			ConversationID: conv.ID,
			Retriable:      false,
			Err:            err,
		}
	}

	logger.Info("Persisted turn %s in conversation %s (%d sources)", qa.ID, conv.ID, len(emitted))

	return &domain.AnswerResult{
		Answer:           answer,
		ConversationID:   conv.ID,
		QuestionAnswerID: qa.ID,
		Sources:          sourceRefs(emitted, ranked),
		Grounded:         grounded,
	}, nil
}

// conversationLock returns the append lock for a conversation,
// creating it on first use.
func (s *AnswerService) conversationLock(conversationID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.convLocks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		s.convLocks[conversationID] = lock
	}
	return lock
}

// sourceRefs hydrates the emitted chunk set for the result, preserving
// rank order.
func sourceRefs(emitted []string, ranked []domain.ScoredChunk) []domain.SourceRef {
	byID := make(map[string]domain.ScoredChunk, len(ranked))
	for _, sc := range ranked {
		byID[sc.Chunk.ID] = sc
	}

	refs := make([]domain.SourceRef, 0, len(emitted))
	for _, id := range emitted {
		sc, ok := byID[id]
		if !ok {
			continue
		}
		refs = append(refs, domain.SourceRef{
			ChunkID:          id,
			DocumentFilename: sc.DocumentFilename,
			ChunkIndex:       sc.Chunk.Index,
			Preview:          Preview(sc.Chunk.Content),
			Available:        true,
		})
	}
	return refs
}

// generationRetriable classifies a backend failure: timeouts,
// cancellation and unreachable backends may succeed on retry; a prompt
// the backend rejected cannot.
func generationRetriable(err error) bool {
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, domain.ErrBackendTimeout),
		errors.Is(err, domain.ErrBackendUnavailable):
		return true
	case errors.Is(err, domain.ErrPromptRejected):
		return false
	default:
		return false
	}
}

// previewRunes caps source previews for display.
const previewRunes = 200

// Preview truncates chunk content for display.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes]) + "..."
}
