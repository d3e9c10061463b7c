package driving

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// DocumentService manages ingested documents.
type DocumentService interface {
	// List returns all documents, oldest upload first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Content reassembles the document text from its chunks' offsets.
	Content(ctx context.Context, documentID string) (string, error)

	// Delete removes a document and its chunks. Past conversation turns
	// that referenced the document's chunks are not edited.
	Delete(ctx context.Context, documentID string) error
}
