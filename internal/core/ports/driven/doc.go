// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Normaliser: Extracts text from raw uploaded files
//   - DocumentStore: Document and chunk persistence
//   - ConversationStore: Conversation and turn persistence
//   - LLMService: The generation backend (opaque text in, text out)
//   - PostProcessor: Produces chunks from document content
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
