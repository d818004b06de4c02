package analysis

import (
	"errors"
	"fmt"
)

// ErrAnalysisFailed marks any failure that aborted an analysis. Use
// errors.As with *AnalysisError for the failing step and its cause.
var ErrAnalysisFailed = errors.New("analysis failed")

var (
	// ErrEmptyPaperSet is the cause reported when Analyze receives no papers.
	ErrEmptyPaperSet = errors.New("empty paper set")

	// ErrTooManyPapers is the cause reported when the paper set exceeds the
	// configured maximum. Callers truncate upstream with Truncate.
	ErrTooManyPapers = errors.New("paper set exceeds maximum")
)

// Step names the stage of an analysis.
type Step string

const (
	StepInput       Step = "input"
	StepSummary     Step = "summary"
	StepGaps        Step = "gaps"
	StepExplanation Step = "simplified_explanation"
)

// AnalysisError wraps the cause of an aborted analysis.
type AnalysisError struct {
	Step Step
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed at %s: %v", e.Step, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrAnalysisFailed) match any AnalysisError.
func (e *AnalysisError) Is(target error) bool {
	return target == ErrAnalysisFailed
}
