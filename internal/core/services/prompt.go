package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// DefaultContextBudget is the default ceiling, in runes, for the
// serialized grounding context supplied to the generator.
const DefaultContextBudget = 12000

// groundingInstruction constrains the generator to the supplied excerpts.
const groundingInstruction = `You are a precise assistant that answers questions based ONLY on the provided document excerpts.

CRITICAL INSTRUCTIONS:
1. Answer the question DIRECTLY and SPECIFICALLY using only information from the provided excerpts
2. If the answer is not in the excerpts, say "The provided documents do not contain information to answer this question"
3. Do NOT provide general knowledge or information not found in the excerpts
4. Quote or reference specific parts from the excerpts when possible
5. Be concise and focused on answering exactly what was asked
6. Support multiple languages including English and Korean`

// chunkSeparator divides excerpts in the serialized context.
const chunkSeparator = "\n\n---\n\n"

// PromptBuilder assembles a bounded grounding context from ranked chunks.
type PromptBuilder struct {
	budget int
}

// NewPromptBuilder creates a prompt builder with the given context
// budget in runes. A non-positive budget falls back to the default.
func NewPromptBuilder(budget int) *PromptBuilder {
	if budget <= 0 {
		budget = DefaultContextBudget
	}
	return &PromptBuilder{budget: budget}
}

// Build assembles the chat messages for a question over ranked chunks.
// Chunks are presented in relevance order with citation markers. When
// the serialized context would exceed the budget, chunks are dropped
// lowest-ranked first. The top-ranked chunk is never dropped: a
// non-empty ranking always produces at least one excerpt, even when
// that single excerpt exceeds the budget, so a grounded answer is
// never generated from an empty context. The returned chunk IDs record
// exactly the set that survived truncation, in rank order: that set,
// not the input ranking, is what the generator actually saw and what
// must be attributed to the answer.
func (b *PromptBuilder) Build(question string, ranked []domain.ScoredChunk) ([]driven.ChatMessage, []string) {
	kept := ranked
	for len(kept) > 1 && b.contextSize(kept) > b.budget {
		kept = kept[:len(kept)-1]
	}

	if dropped := len(ranked) - len(kept); dropped > 0 {
		logger.Debug("Context budget %d: dropped %d lowest-ranked chunks", b.budget, dropped)
	}

	emitted := make([]string, 0, len(kept))
	excerpts := make([]string, 0, len(kept))
	for _, sc := range kept {
		excerpts = append(excerpts, renderExcerpt(sc))
		emitted = append(emitted, sc.Chunk.ID)
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Question: %s\n\n", question)
	user.WriteString("Relevant document excerpts:\n")
	user.WriteString(strings.Join(excerpts, chunkSeparator))
	user.WriteString("\n\nBased ONLY on the excerpts above, provide a direct and specific answer to the question. If the answer cannot be found in these excerpts, state that clearly.")

	messages := []driven.ChatMessage{
		{Role: "system", Content: groundingInstruction},
		{Role: "user", Content: user.String()},
	}

	return messages, emitted
}

// contextSize measures the serialized excerpt block in runes.
func (b *PromptBuilder) contextSize(chunks []domain.ScoredChunk) int {
	size := 0
	for i, sc := range chunks {
		if i > 0 {
			size += len([]rune(chunkSeparator))
		}
		size += len([]rune(renderExcerpt(sc)))
	}
	return size
}

// renderExcerpt formats one chunk with its citation marker.
func renderExcerpt(sc domain.ScoredChunk) string {
	return fmt.Sprintf("[From %s, Chunk %d]\n%s", sc.DocumentFilename, sc.Chunk.Index+1, sc.Chunk.Content)
}
