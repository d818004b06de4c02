// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a model's free-text response into the structured
// fields of an analysis record.
package extract

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/research-genie/pkg/types"
)

// Gaps splits a gaps response into enumerated-list lines. A line is kept when
// its trimmed form starts with a decimal digit; kept lines are trimmed but
// keep their numeric marker. When no line qualifies, the whole untrimmed
// response is returned as the single gap, so the result is never empty.
func Gaps(raw string) []string {
	var gaps []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(trimmed)
		if unicode.IsDigit(first) {
			gaps = append(gaps, trimmed)
		}
	}
	if len(gaps) == 0 {
		return []string{raw}
	}
	return gaps
}

// Result is the extracted value for one task: Text for prose tasks, Items
// for list tasks.
type Result struct {
	Text  string
	Items []string
}

// Extract dispatches on kind. Gaps responses are split with Gaps; every
// other kind is returned verbatim as Text.
func Extract(kind types.TaskKind, raw string) (Result, error) {
	switch kind {
	case types.TaskGaps:
		return Result{Items: Gaps(raw)}, nil
	case types.TaskSummary, types.TaskSimplifiedExplanation, types.TaskComparison, types.TaskCitationAnalysis:
		return Result{Text: raw}, nil
	default:
		return Result{}, fmt.Errorf("unknown task kind %q", kind)
	}
}
