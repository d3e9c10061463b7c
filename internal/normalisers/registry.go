package normalisers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/docx"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/eml"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/xlsx"
)

// Registry maps file extensions to normalisers.
type Registry struct {
	byExt map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]driven.Normaliser),
	}
}

// Defaults returns a registry with all built-in normalisers registered.
func Defaults() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(xlsx.New())
	r.Register(eml.New())
	return r
}

// Register adds a normaliser for each extension it declares.
// A later registration replaces an earlier one for the same extension.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.Extensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// ForFilename returns the normaliser handling the file's extension.
func (r *Registry) ForFilename(filename string) (driven.Normaliser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return nil, fmt.Errorf("file %q has no extension: %w", filename, domain.ErrUnsupportedFormat)
	}
	n, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("file extension %q: %w", ext, domain.ErrUnsupportedFormat)
	}
	return n, nil
}

// Extensions returns all registered extensions, for user-facing messages.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
