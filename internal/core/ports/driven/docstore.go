package driven

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// DocumentStore persists documents and chunks.
type DocumentStore interface {
	// SaveDocumentWithChunks stores a document and all of its chunks
	// atomically: readers never observe the document without its full
	// chunk set, and a failure leaves neither behind.
	SaveDocumentWithChunks(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentByFilename retrieves a document by its original filename.
	GetDocumentByFilename(ctx context.Context, filename string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document, ordered by index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ListDocuments returns all documents, ordered by upload time ascending.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and exactly its own chunks.
	// Past question/answer chunk references are left untouched.
	DeleteDocument(ctx context.Context, id string) error
}
