package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file format no normaliser handles.
	// Ingestion is rejected and no document is created.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrParseFailure indicates a file of a supported format could not be
	// read. Ingestion is rejected and no document is created.
	ErrParseFailure = errors.New("file could not be parsed")

	// ErrChunkConfig indicates an invalid chunker configuration
	// (overlap >= size, or a non-positive size). Fatal at configuration time.
	ErrChunkConfig = errors.New("invalid chunk configuration")

	// ErrBackendUnavailable indicates the generation backend could not be
	// reached. The request may be retried.
	ErrBackendUnavailable = errors.New("generation backend unavailable")

	// ErrBackendTimeout indicates the generation call exceeded its
	// deadline or was cancelled. The request may be retried.
	ErrBackendTimeout = errors.New("generation backend timed out")

	// ErrPromptRejected indicates the backend refused the prompt itself
	// (malformed or oversized). Retrying the same request cannot succeed.
	ErrPromptRejected = errors.New("prompt rejected by backend")
)
