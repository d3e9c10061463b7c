package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/postprocessors/chunker"
)

func TestDocumentService_List(t *testing.T) {
	store := memory.NewDocumentStore()
	base := time.Now()
	seedDocument(t, store, "doc-b", "second.txt", base.Add(time.Hour), "later upload")
	seedDocument(t, store, "doc-a", "first.txt", base, "earlier upload")
	svc := NewDocumentService(store)

	docs, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first.txt", docs[0].Filename)
	assert.Equal(t, "second.txt", docs[1].Filename)
}

func TestDocumentService_Get_NotFound(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())

	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Content_ReassemblesWithoutDuplication(t *testing.T) {
	// Chunk a real text so offsets carry genuine overlap, then check
	// the reassembly matches the original exactly.
	original := strings.Repeat("abcdefghij", 250) // 2500 runes
	doc := &domain.Document{
		ID:         "doc-1",
		Filename:   "long.txt",
		FileType:   domain.FileTypeText,
		Content:    original,
		UploadedAt: time.Now(),
	}
	proc, err := chunker.New()
	require.NoError(t, err)
	chunks, err := proc.Process(context.Background(), doc, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	store := memory.NewDocumentStore()
	require.NoError(t, store.SaveDocumentWithChunks(context.Background(), doc, chunks))
	svc := NewDocumentService(store)

	content, err := svc.Content(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, original, content)
}

func TestDocumentService_Content_SingleChunk(t *testing.T) {
	store := memory.NewDocumentStore()
	seedDocument(t, store, "doc-1", "short.txt", time.Now(), "just one chunk of text")
	svc := NewDocumentService(store)

	content, err := svc.Content(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "just one chunk of text", content)
}

func TestDocumentService_Content_NotFound(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())

	_, err := svc.Content(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Delete(t *testing.T) {
	store := memory.NewDocumentStore()
	seedDocument(t, store, "doc-1", "a.txt", time.Now(), "content")
	svc := NewDocumentService(store)

	require.NoError(t, svc.Delete(context.Background(), "doc-1"))

	_, err := svc.Get(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Delete_NotFound(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())

	err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
