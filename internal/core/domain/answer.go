package domain

import (
	"errors"
	"fmt"
	"time"
)

// Stage identifies where in the answer pipeline a request currently is,
// or where it failed.
type Stage string

// Pipeline stages.
const (
	StageReceived   Stage = "received"
	StageRetrieving Stage = "retrieving"
	StageGenerating Stage = "generating"
	StagePersisting Stage = "persisting"
	StageCompleted  Stage = "completed"
)

// PipelineError reports a failed answer request with enough context for
// the caller to log and act on it. No stage swallows an error silently.
type PipelineError struct {
	// Stage is the pipeline stage that failed.
	Stage Stage

	// ConversationID is the conversation the request ran against,
	// empty if it failed before one was resolved.
	ConversationID string

	// Retriable reports whether repeating the identical request can
	// succeed (backend unreachable, timeout) or not (rejected prompt,
	// store failure).
	Retriable bool

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.ConversationID != "" {
		return fmt.Sprintf("answer pipeline failed at %s (conversation %s): %v", e.Stage, e.ConversationID, e.Err)
	}
	return fmt.Sprintf("answer pipeline failed at %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// IsRetriable reports whether err is a PipelineError marked retriable.
func IsRetriable(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Retriable
	}
	return false
}

// ScoredChunk is a chunk paired with its relevance score and the owning
// document's metadata needed for deterministic ordering and citation.
type ScoredChunk struct {
	// Chunk is the retrieved chunk.
	Chunk Chunk

	// DocumentFilename is the owning document's original filename.
	DocumentFilename string

	// DocumentUploadedAt is the owning document's upload time,
	// the first tie-break key for equal scores.
	DocumentUploadedAt time.Time

	// Score is the lexical relevance score, always >= 0.
	Score float64
}

// SourceRef describes one chunk an answer was grounded in, hydrated for
// display. Available is false when the chunk's owning document has since
// been deleted.
type SourceRef struct {
	ChunkID          string
	DocumentFilename string
	ChunkIndex       int
	Preview          string
	Available        bool
}

// AnswerResult is the outcome of a successful answer request.
type AnswerResult struct {
	// Answer is the generated (or deterministic no-grounding) answer text.
	Answer string

	// ConversationID identifies the conversation the turn was appended to.
	// It is newly allocated when the caller supplied none.
	ConversationID string

	// QuestionAnswerID identifies the persisted turn.
	QuestionAnswerID string

	// Sources lists the chunks the generator actually saw, in relevance
	// order. Empty when the answer was not grounded in any document.
	Sources []SourceRef

	// Grounded is false when no relevant chunks were found and the
	// backend was not called.
	Grounded bool
}
