// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refine cleans and lightly canonicalizes a raw research query before
// it is used for paper search or as prompt context.
package refine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/research-genie/internal/logging"
)

// stopWords are dropped from long queries unless longer than maxStopWordLen.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"what": true, "how": true, "where": true, "when": true, "why": true, "which": true,
}

// academicKeywords mark a query as already carrying academic context.
// Matching is by substring, so "researchers" counts as "research".
var academicKeywords = []string{"research", "study", "paper", "analysis", "survey"}

const (
	// stopWordMinTokens is the token count above which stop words are removed.
	stopWordMinTokens = 5

	// maxStopWordLen is the longest stop word that is actually removed.
	maxStopWordLen = 3

	// hintMaxTokens is the token count below which the academic hint is appended.
	hintMaxTokens = 8

	academicHint = "research"
)

// normalize is swapped in tests to exercise the fail-open path.
var normalize = Normalize

// Refiner normalizes queries. It holds no per-request state and is safe for
// concurrent use.
type Refiner struct {
	log *logging.Logger
}

// New returns a Refiner that logs through log (nil discards).
func New(log *logging.Logger) *Refiner {
	return &Refiner{log: logging.OrNop(log)}
}

// Refine returns the normalized form of query. It never fails: if
// normalization panics, the original query is returned unchanged.
func (r *Refiner) Refine(query string) (refined string) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("query refinement failed, using original", "query", query, "panic", fmt.Sprint(p))
			refined = query
		}
	}()

	r.log.Info("refining query", "query", query)
	refined = normalize(query)
	r.log.Info("refined query", "query", query, "refined", refined)
	return refined
}

// Normalize applies the normalization steps in order: lowercase and trim,
// collapse whitespace, replace disallowed characters with spaces, drop short
// stop words from long queries, and append the academic hint to short
// queries that lack an academic keyword.
func Normalize(query string) string {
	s := strings.ToLower(strings.TrimSpace(query))
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Map(keepRune, s)

	words := strings.Fields(s)
	if countTokens(words) > stopWordMinTokens {
		kept := words[:0:0]
		for _, w := range words {
			if stopWords[w] && len(w) <= maxStopWordLen {
				continue
			}
			kept = append(kept, w)
		}
		words = kept
	}

	s = strings.Join(words, " ")
	return enhanceAcademicContext(s)
}

// keepRune maps characters outside letters, digits, underscore, whitespace
// and hyphen to a space.
func keepRune(r rune) rune {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' || r == '-' {
		return r
	}
	return ' '
}

// countTokens counts words for the stop-word decision. A trailing hint that
// enhanceAcademicContext could have appended is not counted, so that
// normalizing an already normalized query makes the same decision.
func countTokens(words []string) int {
	n := len(words)
	if n > 0 && words[n-1] == academicHint && !hasAcademicKeyword(strings.Join(words[:n-1], " ")) {
		n--
	}
	return n
}

func hasAcademicKeyword(s string) bool {
	for _, k := range academicKeywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func enhanceAcademicContext(query string) string {
	if hasAcademicKeyword(query) {
		return query
	}
	if len(strings.Fields(query)) < hintMaxTokens {
		if query == "" {
			return academicHint
		}
		return query + " " + academicHint
	}
	return query
}

// KeyTerms returns the lowercase tokens of query that are not stop words and
// are longer than three characters, in order of appearance.
func KeyTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if stopWords[w] || len(w) <= maxStopWordLen {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}
