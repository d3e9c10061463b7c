package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// DefaultTopK is the default number of chunks returned by retrieval.
const DefaultTopK = 10

// RetrievalService ranks the chunk corpus against a query.
//
// This is an unindexed linear scan over every stored chunk. That is the
// scalability ceiling of this implementation: acceptable for moderate
// corpora, and an indexed variant is deliberately out of scope.
type RetrievalService struct {
	docStore driven.DocumentStore
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(docStore driven.DocumentStore) *RetrievalService {
	return &RetrievalService{docStore: docStore}
}

// Retrieve scores every chunk in the corpus against the query and
// returns the top k, ordered by score descending. Equal scores are
// broken deterministically: ascending owning-document upload time, then
// ascending chunk index. Chunks that score zero are dropped; an empty
// corpus or an all-zero scan yields an empty result and no error.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	logger.Section("Retrieval")
	logger.Debug("Query: %q, k: %d", query, k)

	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	profile := newQueryProfile(query)

	var scored []domain.ScoredChunk
	corpusSize := 0

	for i := range docs {
		doc := docs[i]
		chunks, err := s.docStore.GetChunks(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("get chunks for document %s: %w", doc.ID, err)
		}
		corpusSize += len(chunks)

		for _, chunk := range chunks {
			score := profile.score(chunk.Content)
			if score <= 0 {
				continue
			}
			scored = append(scored, domain.ScoredChunk{
				Chunk:              chunk,
				DocumentFilename:   doc.Filename,
				DocumentUploadedAt: doc.UploadedAt,
				Score:              score,
			})
		}
	}

	logger.Debug("Corpus: %d chunks across %d documents, %d matched", corpusSize, len(docs), len(scored))

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.DocumentUploadedAt.Equal(b.DocumentUploadedAt) {
			return a.DocumentUploadedAt.Before(b.DocumentUploadedAt)
		}
		return a.Chunk.Index < b.Chunk.Index
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	logger.Info("Retrieved %d chunks", len(scored))
	return scored, nil
}
