// Package chunker provides a fixed-size, overlap-window text chunking
// processor with exact rune offset tracking.
package chunker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// DefaultChunkSize is the default number of runes per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping runes
// between consecutive chunks.
const DefaultChunkOverlap = 200

// Processor splits document content into fixed-size overlapping chunks.
// Offsets are rune positions into the original content, so the source
// text can be reconstructed exactly from the chunk boundaries.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in runes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in runes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a new chunker processor with the given options.
// The configuration is validated once here: size must be positive and
// overlap must be non-negative and strictly smaller than size.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size %d: %w", p.chunkSize, domain.ErrChunkConfig)
	}
	if p.overlap < 0 || p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("overlap %d with size %d: %w", p.overlap, p.chunkSize, domain.ErrChunkConfig)
	}

	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from
// document content. Identical content always yields identical windows.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	windows := p.split(doc.Content)

	chunks := make([]domain.Chunk, 0, len(windows))
	for i, w := range windows {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Index:      i,
			Content:    w.content,
			StartChar:  w.start,
			EndChar:    w.end,
		})
	}

	return chunks, nil
}

// window is one chunk-sized slice of the content with its rune offsets.
type window struct {
	content    string
	start, end int
}

// split computes the chunk windows for a text. Windows advance by
// size-overlap runes; the final window is truncated to the remaining
// text, and iteration stops once a window reaches the end, so a text of
// 2500 runes with size 1000 and overlap 200 yields windows starting at
// 0, 800 and 1600.
func (p *Processor) split(text string) []window {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)
	step := p.chunkSize - p.overlap

	windows := make([]window, 0, total/step+1)

	for start := 0; start < total; start += step {
		end := start + p.chunkSize
		if end > total {
			end = total
		}

		windows = append(windows, window{
			content: string(runes[start:end]),
			start:   start,
			end:     end,
		})

		if end == total {
			break
		}
	}

	return windows
}
