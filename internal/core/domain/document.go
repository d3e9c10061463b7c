package domain

import (
	"fmt"
	"strings"
	"time"
)

// FileType tags the format a document was ingested from.
type FileType string

// Supported file types.
const (
	FileTypePDF      FileType = "pdf"
	FileTypeDocx     FileType = "docx"
	FileTypeXLSX     FileType = "xlsx"
	FileTypeEmail    FileType = "email"
	FileTypeMarkdown FileType = "markdown"
	FileTypeText     FileType = "text"
)

// Document represents an ingested document with its extracted text.
// It is the canonical representation after extraction.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original name of the uploaded file.
	Filename string

	// FileType is the format the document was extracted from.
	FileType FileType

	// Content is the full extracted text before chunking.
	Content string

	// Size is the size of the original file in bytes.
	Size int64

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time
}

// NewDocument validates and constructs a Document. It is the only way
// documents enter the system; callers must not assemble the struct by hand.
func NewDocument(id, filename string, fileType FileType, content string, size int64, uploadedAt time.Time) (*Document, error) {
	if id == "" {
		return nil, fmt.Errorf("document id: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("document filename: %w", ErrInvalidInput)
	}
	if size < 0 {
		return nil, fmt.Errorf("document size %d: %w", size, ErrInvalidInput)
	}
	switch fileType {
	case FileTypePDF, FileTypeDocx, FileTypeXLSX, FileTypeEmail, FileTypeMarkdown, FileTypeText:
	default:
		return nil, fmt.Errorf("document file type %q: %w", fileType, ErrInvalidInput)
	}
	if uploadedAt.IsZero() {
		uploadedAt = time.Now().UTC()
	}

	return &Document{
		ID:         id,
		Filename:   filename,
		FileType:   fileType,
		Content:    content,
		Size:       size,
		UploadedAt: uploadedAt,
	}, nil
}

// Chunk is a bounded, offset-tracked slice of a document's text.
// It is the unit of retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Index is the 0-based position within the document. Index order
	// matches offset order.
	Index int

	// Content is the text content of this chunk.
	Content string

	// StartChar is the starting rune offset into the document content.
	StartChar int

	// EndChar is the rune offset one past the last rune of the chunk.
	// Content equals the document content sliced at [StartChar:EndChar].
	EndChar int
}

// Validate checks the chunk's internal invariants.
func (c Chunk) Validate() error {
	if c.ID == "" || c.DocumentID == "" {
		return fmt.Errorf("chunk identifiers: %w", ErrInvalidInput)
	}
	if c.Index < 0 {
		return fmt.Errorf("chunk index %d: %w", c.Index, ErrInvalidInput)
	}
	if c.StartChar < 0 || c.EndChar < c.StartChar {
		return fmt.Errorf("chunk offsets [%d,%d): %w", c.StartChar, c.EndChar, ErrInvalidInput)
	}
	if len([]rune(c.Content)) != c.EndChar-c.StartChar {
		return fmt.Errorf("chunk content length does not match offsets: %w", ErrInvalidInput)
	}
	return nil
}

// RawFile carries the opaque bytes of an uploaded file before extraction.
type RawFile struct {
	// Filename is the original file name, used for format detection.
	Filename string

	// Data is the raw file bytes.
	Data []byte
}
