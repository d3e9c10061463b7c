// Package domain defines the core business entities for Askdoc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document and its extracted text
//   - Chunk: An offset-tracked slice of a document, the unit of retrieval
//   - Conversation: An ordered sequence of question/answer turns
//   - QuestionAnswer: A single turn with its source chunk attribution
//   - RawFile: Opaque uploaded bytes before extraction
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
