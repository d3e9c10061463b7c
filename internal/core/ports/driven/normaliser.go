package driven

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// Normaliser extracts plain text from raw uploaded files.
// Each normaliser handles specific file extensions (e.g., .pdf, .docx).
type Normaliser interface {
	// Extensions returns the lower-case file extensions this
	// normaliser handles, including the leading dot.
	Extensions() []string

	// FileType returns the type tag recorded on documents this
	// normaliser produces.
	FileType() domain.FileType

	// Normalise extracts the plain text content of a raw file.
	// It returns domain.ErrParseFailure (wrapped) when the bytes
	// cannot be read as the expected format.
	Normalise(ctx context.Context, raw *domain.RawFile) (string, error)
}
