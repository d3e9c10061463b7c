package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// mockLLM records Chat calls and returns a canned response or error.
type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	messages []driven.ChatMessage
	options  driven.ChatOptions
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.messages = messages
	m.options = opts
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string { return "mock-model" }

func (m *mockLLM) Ping(ctx context.Context) error { return nil }

func (m *mockLLM) Close() error { return nil }

// failingConversationStore wraps the memory store and fails AppendTurn.
type failingConversationStore struct {
	*memory.ConversationStore
	appendErr error
}

func (f *failingConversationStore) AppendTurn(ctx context.Context, qa *domain.QuestionAnswer) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	return f.ConversationStore.AppendTurn(ctx, qa)
}

func newAnswerFixture(t *testing.T, llm driven.LLMService, contents ...string) (*AnswerService, *memory.ConversationStore) {
	t.Helper()
	docStore := memory.NewDocumentStore()
	if len(contents) > 0 {
		seedDocument(t, docStore, "doc-1", "handbook.txt", time.Now(), contents...)
	}
	convStore := memory.NewConversationStore()
	svc := NewAnswerService(
		NewRetrievalService(docStore),
		NewPromptBuilder(0),
		llm,
		convStore,
	)
	return svc, convStore
}

func TestAnswer_GroundedHappyPath(t *testing.T) {
	llm := &mockLLM{response: "Vacation allowance is 25 days."}
	svc, convStore := newAnswerFixture(t, llm, "The vacation allowance is 25 days per year.")

	result, err := svc.Answer(context.Background(), "What is the vacation allowance?", "")

	require.NoError(t, err)
	assert.Equal(t, "Vacation allowance is 25 days.", result.Answer)
	assert.True(t, result.Grounded)
	assert.NotEmpty(t, result.ConversationID)
	assert.NotEmpty(t, result.QuestionAnswerID)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "handbook.txt", result.Sources[0].DocumentFilename)
	assert.True(t, result.Sources[0].Available)

	// The turn was persisted with the emitted source set.
	turns, err := convStore.ListTurns(context.Background(), result.ConversationID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "What is the vacation allowance?", turns[0].Question)
	assert.Equal(t, []string{result.Sources[0].ChunkID}, turns[0].SourceChunkIDs)
}

func TestAnswer_GenerationOptions(t *testing.T) {
	llm := &mockLLM{response: "answer"}
	svc, _ := newAnswerFixture(t, llm, "release notes content")

	_, err := svc.Answer(context.Background(), "release notes", "")

	require.NoError(t, err)
	assert.Equal(t, 1000, llm.options.MaxTokens)
	assert.InDelta(t, 0.3, llm.options.Temperature, 0.001)
	require.Len(t, llm.messages, 2)
	assert.Equal(t, "system", llm.messages[0].Role)
}

func TestAnswer_NoGroundingSkipsBackend(t *testing.T) {
	llm := &mockLLM{response: "should never be used"}
	svc, convStore := newAnswerFixture(t, llm, "content about gardening only")

	result, err := svc.Answer(context.Background(), "kubernetes failover", "")

	require.NoError(t, err)
	assert.Equal(t, NoGroundingAnswer, result.Answer)
	assert.False(t, result.Grounded)
	assert.Empty(t, result.Sources)
	assert.Zero(t, llm.calls)

	// The turn is still persisted, with no sources.
	turns, err := convStore.ListTurns(context.Background(), result.ConversationID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, NoGroundingAnswer, turns[0].Answer)
	assert.Empty(t, turns[0].SourceChunkIDs)
}

func TestAnswer_EmptyCorpusNoGrounding(t *testing.T) {
	llm := &mockLLM{response: "unused"}
	svc, _ := newAnswerFixture(t, llm)

	result, err := svc.Answer(context.Background(), "anything", "")

	require.NoError(t, err)
	assert.Equal(t, NoGroundingAnswer, result.Answer)
	assert.Zero(t, llm.calls)
}

func TestAnswer_BlankQuestionRejected(t *testing.T) {
	llm := &mockLLM{}
	svc, _ := newAnswerFixture(t, llm, "some content")

	_, err := svc.Answer(context.Background(), "   ", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnswer_ReusesExistingConversation(t *testing.T) {
	llm := &mockLLM{response: "first answer"}
	svc, convStore := newAnswerFixture(t, llm, "project deadline is Friday")

	first, err := svc.Answer(context.Background(), "project deadline", "")
	require.NoError(t, err)

	llm.response = "second answer"
	second, err := svc.Answer(context.Background(), "project deadline again", first.ConversationID)
	require.NoError(t, err)

	assert.Equal(t, first.ConversationID, second.ConversationID)

	turns, err := convStore.ListTurns(context.Background(), first.ConversationID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "project deadline", turns[0].Question)
	assert.Equal(t, "project deadline again", turns[1].Question)
}

func TestAnswer_UnknownConversationStartsFresh(t *testing.T) {
	llm := &mockLLM{response: "answer"}
	svc, convStore := newAnswerFixture(t, llm, "meeting agenda items")

	result, err := svc.Answer(context.Background(), "meeting agenda", "no-such-conversation")

	require.NoError(t, err)
	assert.NotEqual(t, "no-such-conversation", result.ConversationID)

	conv, err := convStore.GetConversation(context.Background(), result.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, result.ConversationID, conv.ID)
}

func TestAnswer_BackendTimeoutIsRetriable(t *testing.T) {
	llm := &mockLLM{err: domain.ErrBackendTimeout}
	svc, convStore := newAnswerFixture(t, llm, "server configuration details")

	_, err := svc.Answer(context.Background(), "server configuration", "")

	var pipeErr *domain.PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, domain.StageGenerating, pipeErr.Stage)
	assert.True(t, pipeErr.Retriable)
	assert.ErrorIs(t, err, domain.ErrBackendTimeout)

	// Nothing persisted on generation failure.
	turns, err := convStore.ListTurns(context.Background(), pipeErr.ConversationID)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAnswer_BackendUnavailableIsRetriable(t *testing.T) {
	llm := &mockLLM{err: domain.ErrBackendUnavailable}
	svc, _ := newAnswerFixture(t, llm, "server configuration details")

	_, err := svc.Answer(context.Background(), "server configuration", "")

	var pipeErr *domain.PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, domain.StageGenerating, pipeErr.Stage)
	assert.True(t, pipeErr.Retriable)
}

func TestAnswer_PromptRejectedIsNotRetriable(t *testing.T) {
	llm := &mockLLM{err: domain.ErrPromptRejected}
	svc, _ := newAnswerFixture(t, llm, "server configuration details")

	_, err := svc.Answer(context.Background(), "server configuration", "")

	var pipeErr *domain.PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, domain.StageGenerating, pipeErr.Stage)
	assert.False(t, pipeErr.Retriable)
}

func TestAnswer_PersistFailureIsFatal(t *testing.T) {
	llm := &mockLLM{response: "answer"}
	docStore := memory.NewDocumentStore()
	seedDocument(t, docStore, "doc-1", "a.txt", time.Now(), "budget planning spreadsheet")
	store := &failingConversationStore{
		ConversationStore: memory.NewConversationStore(),
		appendErr:         errors.New("disk full"),
	}
	svc := NewAnswerService(NewRetrievalService(docStore), NewPromptBuilder(0), llm, store)

	_, err := svc.Answer(context.Background(), "budget planning", "")

	var pipeErr *domain.PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, domain.StagePersisting, pipeErr.Stage)
	assert.False(t, pipeErr.Retriable)
}

func TestAnswer_ConcurrentQuestionsOnOneConversation(t *testing.T) {
	llm := &mockLLM{response: "answer"}
	svc, convStore := newAnswerFixture(t, llm, "standup notes for the team")

	first, err := svc.Answer(context.Background(), "standup notes", "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Answer(context.Background(), "standup notes", first.ConversationID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	turns, err := convStore.ListTurns(context.Background(), first.ConversationID)
	require.NoError(t, err)
	assert.Len(t, turns, 9)
}

func TestPreview_ShortContentUnchanged(t *testing.T) {
	assert.Equal(t, "short text", Preview("short text"))
}

func TestPreview_LongContentTruncated(t *testing.T) {
	long := make([]rune, 300)
	for i := range long {
		long[i] = 'a'
	}
	got := Preview(string(long))
	assert.Len(t, []rune(got), 203)
	assert.True(t, got[len(got)-3:] == "...")
}
