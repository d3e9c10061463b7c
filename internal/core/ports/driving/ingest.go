package driving

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// IngestService turns uploaded files into stored, chunked documents.
type IngestService interface {
	// Ingest extracts text from the raw file, chunks it, and persists
	// the document with its chunks atomically. A file whose name matches
	// an existing document is not re-ingested; the existing document is
	// returned with AlreadyExists set.
	Ingest(ctx context.Context, raw *domain.RawFile) (*IngestResult, error)
}

// IngestResult reports the outcome of an ingestion.
type IngestResult struct {
	// Document is the stored (or pre-existing) document.
	Document domain.Document

	// ChunkCount is the number of chunks created for the document.
	ChunkCount int

	// AlreadyExists is true when a document with the same filename was
	// already present and ingestion was skipped.
	AlreadyExists bool
}
