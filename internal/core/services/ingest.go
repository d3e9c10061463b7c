package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// NormaliserRegistry selects a normaliser for a filename.
type NormaliserRegistry interface {
	// ForFilename returns the normaliser handling the file's extension,
	// or domain.ErrUnsupportedFormat (wrapped) when none does.
	ForFilename(filename string) (driven.Normaliser, error)
}

// IngestService turns uploaded files into stored, chunked documents.
type IngestService struct {
	docStore    driven.DocumentStore
	normalisers NormaliserRegistry
	pipeline    driven.PostProcessorPipeline
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	docStore driven.DocumentStore,
	normalisers NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
) *IngestService {
	return &IngestService{
		docStore:    docStore,
		normalisers: normalisers,
		pipeline:    pipeline,
	}
}

// Ingest extracts, chunks and persists one uploaded file.
// The document and all of its chunks become visible atomically, or not
// at all. Extraction failures reject the upload: no document is created
// for a file that could not be read.
func (s *IngestService) Ingest(ctx context.Context, raw *domain.RawFile) (*driving.IngestResult, error) {
	if raw == nil || raw.Filename == "" {
		return nil, fmt.Errorf("file is required: %w", domain.ErrInvalidInput)
	}

	logger.Section("Ingestion")
	logger.Debug("File: %s (%d bytes)", raw.Filename, len(raw.Data))

	normaliser, err := s.normalisers.ForFilename(raw.Filename)
	if err != nil {
		return nil, err
	}

	// A file already ingested under the same name is not re-processed.
	existing, err := s.docStore.GetDocumentByFilename(ctx, raw.Filename)
	if err == nil {
		chunks, err := s.docStore.GetChunks(ctx, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("get chunks for existing document: %w", err)
		}
		logger.Info("Document %s already exists as %s", raw.Filename, existing.ID)
		return &driving.IngestResult{
			Document:      *existing,
			ChunkCount:    len(chunks),
			AlreadyExists: true,
		}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing document: %w", err)
	}

	content, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", raw.Filename, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("no text content in %s: %w", raw.Filename, domain.ErrInvalidInput)
	}

	doc, err := domain.NewDocument(
		uuid.New().String(),
		raw.Filename,
		normaliser.FileType(),
		content,
		int64(len(raw.Data)),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", raw.Filename, err)
	}

	if err := s.docStore.SaveDocumentWithChunks(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("persist document %s: %w", doc.ID, err)
	}

	logger.Info("Ingested %s as document %s (%d chunks)", raw.Filename, doc.ID, len(chunks))

	return &driving.IngestResult{
		Document:   *doc,
		ChunkCount: len(chunks),
	}, nil
}
