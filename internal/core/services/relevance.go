package services

import "strings"

// Relevance scoring weights. A matched multi-word phrase is a strictly
// stronger signal than an isolated keyword, so phrases weigh more.
// These are fixed constants, never tuned per call, which keeps scores
// reproducible across runs.
const (
	// KeywordWeight is the score contribution of each distinct query
	// keyword found in a chunk.
	KeywordWeight = 1.0

	// PhraseWeight is the score contribution of each distinct query
	// phrase (bigram or trigram) found in a chunk.
	PhraseWeight = 3.0
)

// minKeywordLen filters out tokens too short to be meaningful.
const minKeywordLen = 3

// stopWords are common English words excluded from keyword matching.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "should": {},
	"could": {}, "may": {}, "might": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "what": {}, "which": {},
	"who": {}, "whom": {}, "where": {}, "when": {}, "why": {}, "how": {},
}

// Score computes the lexical relevance of a chunk's content to a query.
// It is a pure function: no I/O, no mutation, and identical inputs always
// produce the identical score, which is always >= 0.
func Score(query, content string) float64 {
	return newQueryProfile(query).score(content)
}

// queryProfile is a query pre-tokenised once so a corpus scan does not
// re-tokenise per chunk.
type queryProfile struct {
	keywords []string
	phrases  []string
}

// newQueryProfile normalises a query into keywords and phrases.
// Keywords are lowercase whitespace-separated tokens at least
// minKeywordLen runes long that are not stop words. Phrases are the
// contiguous bigrams and trigrams of the raw lowercase token stream,
// kept only when they contain at least one keyword-grade token.
func newQueryProfile(query string) *queryProfile {
	tokens := strings.Fields(strings.ToLower(query))

	p := &queryProfile{}
	seen := make(map[string]struct{})

	for _, tok := range tokens {
		if !isKeyword(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		p.keywords = append(p.keywords, tok)
	}

	seenPhrase := make(map[string]struct{})
	for n := 2; n <= 3; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := tokens[i : i+n]
			if !hasKeyword(gram) {
				continue
			}
			phrase := strings.Join(gram, " ")
			if _, dup := seenPhrase[phrase]; dup {
				continue
			}
			seenPhrase[phrase] = struct{}{}
			p.phrases = append(p.phrases, phrase)
		}
	}

	return p
}

// score counts distinct keyword and phrase hits in the content and
// combines them with the fixed weights.
func (p *queryProfile) score(content string) float64 {
	if content == "" {
		return 0
	}

	contentLower := strings.ToLower(content)

	var keywordHits, phraseHits int
	for _, kw := range p.keywords {
		if strings.Contains(contentLower, kw) {
			keywordHits++
		}
	}
	for _, ph := range p.phrases {
		if strings.Contains(contentLower, ph) {
			phraseHits++
		}
	}

	return KeywordWeight*float64(keywordHits) + PhraseWeight*float64(phraseHits)
}

// isKeyword reports whether a token carries enough signal to match on.
func isKeyword(tok string) bool {
	if len([]rune(tok)) < minKeywordLen {
		return false
	}
	_, stop := stopWords[tok]
	return !stop
}

// hasKeyword reports whether any token in the n-gram is keyword-grade.
func hasKeyword(gram []string) bool {
	for _, tok := range gram {
		if isKeyword(tok) {
			return true
		}
	}
	return false
}
