package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
	assert.NotNil(t, store.chunks)
}

func TestDocumentStore_SaveDocumentWithChunks_Success(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	now := time.Now()
	doc := &domain.Document{
		ID:         "doc-1",
		Filename:   "report.txt",
		FileType:   domain.FileTypeText,
		Content:    "hello world",
		Size:       11,
		UploadedAt: now,
	}
	chunks := []domain.Chunk{
		{ID: "chunk-1", DocumentID: "doc-1", Index: 0, Content: "hello world", StartChar: 0, EndChar: 11},
	}

	err := store.SaveDocumentWithChunks(ctx, doc, chunks)
	require.NoError(t, err)

	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", saved.ID)
	assert.Equal(t, "report.txt", saved.Filename)
	assert.Equal(t, domain.FileTypeText, saved.FileType)

	savedChunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, savedChunks, 1)
	assert.Equal(t, "chunk-1", savedChunks[0].ID)
}

func TestDocumentStore_SaveDocumentWithChunks_OrdersByIndex(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Filename: "a.txt", FileType: domain.FileTypeText}
	chunks := []domain.Chunk{
		{ID: "chunk-3", DocumentID: "doc-1", Index: 2},
		{ID: "chunk-1", DocumentID: "doc-1", Index: 0},
		{ID: "chunk-2", DocumentID: "doc-1", Index: 1},
	}

	err := store.SaveDocumentWithChunks(ctx, doc, chunks)
	require.NoError(t, err)

	saved, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, "chunk-1", saved[0].ID)
	assert.Equal(t, "chunk-2", saved[1].ID)
	assert.Equal(t, "chunk-3", saved[2].ID)
}

func TestDocumentStore_GetDocument_NotFound(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc, err := store.GetDocument(ctx, "nonexistent")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, doc)
}

func TestDocumentStore_GetDocumentByFilename(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Filename: "notes.md", FileType: domain.FileTypeMarkdown}
	err := store.SaveDocumentWithChunks(ctx, doc, nil)
	require.NoError(t, err)

	found, err := store.GetDocumentByFilename(ctx, "notes.md")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", found.ID)

	_, err = store.GetDocumentByFilename(ctx, "other.md")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_GetChunks_UnknownDocument(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	chunks, err := store.GetChunks(ctx, "nonexistent")

	require.NoError(t, err)
	assert.Nil(t, chunks)
}

func TestDocumentStore_GetChunk_AcrossDocuments(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	_ = store.SaveDocumentWithChunks(ctx,
		&domain.Document{ID: "doc-1", Filename: "a.txt", FileType: domain.FileTypeText},
		[]domain.Chunk{{ID: "chunk-1", DocumentID: "doc-1", Index: 0}})
	_ = store.SaveDocumentWithChunks(ctx,
		&domain.Document{ID: "doc-2", Filename: "b.txt", FileType: domain.FileTypeText},
		[]domain.Chunk{{ID: "chunk-2", DocumentID: "doc-2", Index: 0}})

	retrieved, err := store.GetChunk(ctx, "chunk-2")
	require.NoError(t, err)
	assert.Equal(t, "doc-2", retrieved.DocumentID)

	_, err = store.GetChunk(ctx, "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ListDocuments_OrderedByUploadTime(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	base := time.Now()
	docs := []*domain.Document{
		{ID: "doc-c", Filename: "c.txt", FileType: domain.FileTypeText, UploadedAt: base.Add(2 * time.Hour)},
		{ID: "doc-a", Filename: "a.txt", FileType: domain.FileTypeText, UploadedAt: base},
		{ID: "doc-b", Filename: "b.txt", FileType: domain.FileTypeText, UploadedAt: base.Add(time.Hour)},
	}
	for _, doc := range docs {
		_ = store.SaveDocumentWithChunks(ctx, doc, nil)
	}

	retrieved, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, retrieved, 3)
	assert.Equal(t, "doc-a", retrieved[0].ID)
	assert.Equal(t, "doc-b", retrieved[1].ID)
	assert.Equal(t, "doc-c", retrieved[2].ID)
}

func TestDocumentStore_DeleteDocument(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Filename: "a.txt", FileType: domain.FileTypeText}
	chunks := []domain.Chunk{{ID: "chunk-1", DocumentID: "doc-1", Index: 0}}
	_ = store.SaveDocumentWithChunks(ctx, doc, chunks)

	err := store.DeleteDocument(ctx, "doc-1")
	require.NoError(t, err)

	_, err = store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deletedChunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Nil(t, deletedChunks)
}

func TestDocumentStore_DeleteDocument_NotFound(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	err := store.DeleteDocument(ctx, "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_DeleteDocument_LeavesOthers(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	_ = store.SaveDocumentWithChunks(ctx,
		&domain.Document{ID: "doc-1", Filename: "a.txt", FileType: domain.FileTypeText},
		[]domain.Chunk{{ID: "chunk-1", DocumentID: "doc-1", Index: 0}})
	_ = store.SaveDocumentWithChunks(ctx,
		&domain.Document{ID: "doc-2", Filename: "b.txt", FileType: domain.FileTypeText},
		[]domain.Chunk{{ID: "chunk-2", DocumentID: "doc-2", Index: 0}})

	err := store.DeleteDocument(ctx, "doc-1")
	require.NoError(t, err)

	remaining, err := store.GetChunks(ctx, "doc-2")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "chunk-2", remaining[0].ID)
}

func TestDocumentStore_Concurrency_MixedOperations(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	numOperations := 100

	for i := 0; i < 10; i++ {
		doc := &domain.Document{
			ID:       "doc-" + string(rune('0'+i)),
			Filename: "file-" + string(rune('0'+i)) + ".txt",
			FileType: domain.FileTypeText,
		}
		_ = store.SaveDocumentWithChunks(ctx, doc, nil)
	}

	wg.Add(numOperations)
	for i := 0; i < numOperations; i++ {
		go func(id int) {
			defer wg.Done()
			switch id % 4 {
			case 0:
				doc := &domain.Document{
					ID:       "doc-concurrent-" + string(rune('A'+id%26)),
					Filename: "concurrent-" + string(rune('A'+id%26)) + ".txt",
					FileType: domain.FileTypeText,
				}
				_ = store.SaveDocumentWithChunks(ctx, doc, nil)
			case 1:
				_, _ = store.GetDocument(ctx, "doc-"+string(rune('0'+id%10)))
			case 2:
				_, _ = store.GetChunks(ctx, "doc-"+string(rune('0'+id%10)))
			case 3:
				_, _ = store.ListDocuments(ctx)
			}
		}(i)
	}
	wg.Wait()

	// Should not panic or deadlock
	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.NotNil(t, docs)
}
