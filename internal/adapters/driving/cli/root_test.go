package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/services"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers"
	"github.com/custodia-labs/askdoc-cli/internal/postprocessors"
	"github.com/custodia-labs/askdoc-cli/internal/postprocessors/chunker"
)

// stubLLM answers every chat with a fixed response.
type stubLLM struct {
	response string
}

func (s *stubLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return s.response, nil
}

func (s *stubLLM) ModelName() string { return "stub-model" }

func (s *stubLLM) Ping(_ context.Context) error { return nil }

func (s *stubLLM) Close() error { return nil }

// testStores gives tests direct access to the backing stores.
type testStores struct {
	docs  *memory.DocumentStore
	convs *memory.ConversationStore
}

// setupTestServices wires the commands to in-memory stores and a stub
// generation backend. The returned cleanup restores the previous wiring.
func setupTestServices(t *testing.T) (testStores, func()) {
	t.Helper()

	prevIngest := ingestService
	prevAnswer := answerService
	prevDocument := documentService
	prevConversation := conversationService
	prevLLM := llmService

	docStore := memory.NewDocumentStore()
	convStore := memory.NewConversationStore()

	proc, err := chunker.New()
	require.NoError(t, err)

	retrieval := services.NewRetrievalService(docStore)
	SetServices(Services{
		Ingest:       services.NewIngestService(docStore, normalisers.Defaults(), postprocessors.NewPipeline(proc)),
		Answer:       services.NewAnswerService(retrieval, services.NewPromptBuilder(0), &stubLLM{response: "stub answer"}, convStore),
		Document:     services.NewDocumentService(docStore),
		Conversation: services.NewConversationService(convStore, docStore),
		LLM:          &stubLLM{response: "stub answer"},
	})

	cleanup := func() {
		ingestService = prevIngest
		answerService = prevAnswer
		documentService = prevDocument
		conversationService = prevConversation
		llmService = prevLLM
	}

	return testStores{docs: docStore, convs: convStore}, cleanup
}

// seedTestDocument stores a one-chunk document directly.
func seedTestDocument(t *testing.T, store *memory.DocumentStore, id, filename, content string) {
	t.Helper()
	doc := &domain.Document{
		ID:         id,
		Filename:   filename,
		FileType:   domain.FileTypeText,
		Content:    content,
		UploadedAt: time.Now().UTC(),
	}
	chunks := []domain.Chunk{{
		ID:         id + "-chunk-0",
		DocumentID: id,
		Index:      0,
		Content:    content,
		StartChar:  0,
		EndChar:    len([]rune(content)),
	}}
	require.NoError(t, store.SaveDocumentWithChunks(context.Background(), doc, chunks))
}
