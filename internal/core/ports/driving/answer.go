package driving

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// AnswerService answers natural-language questions grounded in the
// ingested corpus.
type AnswerService interface {
	// Answer runs the full retrieve/generate/persist pipeline for one
	// question. An empty conversationID starts a new conversation; an
	// unknown one does too (the resolved ID is always returned in the
	// result). Failures are reported as *domain.PipelineError and never
	// leave a partially persisted turn.
	Answer(ctx context.Context, question, conversationID string) (*domain.AnswerResult, error)
}
