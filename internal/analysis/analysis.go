// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis runs the three-prompt analysis of a query against a
// PaperSet: summary, research gaps, then an explanation pitched at the
// requested education level. Any failed invocation aborts the whole
// analysis; partial records are never returned.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-genie/internal/extract"
	"github.com/pdiddy/research-genie/internal/logging"
	"github.com/pdiddy/research-genie/internal/prompt"
	"github.com/pdiddy/research-genie/pkg/types"
)

// DefaultMaxPapers bounds the PaperSet when no maximum is configured.
const DefaultMaxPapers = 10

// Invoker sends one prompt to a model and returns its raw text.
// *gateway.Gateway satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// newID generates analysis ids. Package-level var for test substitution.
var newID = func() string { return uuid.NewString() }

// Analyzer orchestrates the prompts of one analysis. It holds no
// per-request state and is safe for concurrent use.
type Analyzer struct {
	inv Invoker
	cfg types.AnalysisConfig
	log *logging.Logger
}

// New returns an Analyzer that sends prompts through inv. A non-positive
// MaxPapers is replaced by DefaultMaxPapers.
func New(inv Invoker, cfg types.AnalysisConfig, log *logging.Logger) *Analyzer {
	if cfg.MaxPapers <= 0 {
		cfg.MaxPapers = DefaultMaxPapers
	}
	return &Analyzer{inv: inv, cfg: cfg, log: logging.OrNop(log)}
}

// MaxPapers returns the configured PaperSet bound.
func (a *Analyzer) MaxPapers() int { return a.cfg.MaxPapers }

// Truncate returns at most limit papers from the front of papers. It never
// copies; the result shares the caller's backing array.
func Truncate(papers []types.Paper, limit int) []types.Paper {
	if limit >= 0 && len(papers) > limit {
		return papers[:limit]
	}
	return papers
}

// Analyze produces an AnalysisRecord for query over papers. The level tag
// is normalized with types.ParseEducationLevel. Every failure is an
// *AnalysisError matching ErrAnalysisFailed and wrapping the cause.
//
// The returned record carries Metadata with only AnalysisID set; the
// formatter fills in the rest.
func (a *Analyzer) Analyze(ctx context.Context, query string, papers []types.Paper, level string) (*types.AnalysisRecord, error) {
	id := newID()
	log := a.log.With("analysis_id", id)

	switch {
	case len(papers) == 0:
		return nil, a.fail(log, StepInput, ErrEmptyPaperSet)
	case len(papers) > a.cfg.MaxPapers:
		return nil, a.fail(log, StepInput, fmt.Errorf("%w: %d > %d", ErrTooManyPapers, len(papers), a.cfg.MaxPapers))
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	edu := types.ParseEducationLevel(level)
	log.Info("analysis started", "papers", len(papers), "education_level", string(edu), "concurrent", a.cfg.Concurrent)
	start := time.Now()

	paperCtx := prompt.FormatPapers(papers)
	var (
		summary string
		gaps    []string
		err     error
	)
	if a.cfg.Concurrent {
		summary, gaps, err = a.summaryAndGapsConcurrent(ctx, query, paperCtx)
	} else {
		summary, gaps, err = a.summaryAndGaps(ctx, query, paperCtx)
	}
	if err != nil {
		return nil, a.fail(log, "", err)
	}

	explanation, err := a.inv.Invoke(ctx, prompt.SimplifiedExplanation(query, summary, edu))
	if err != nil {
		return nil, a.fail(log, StepExplanation, err)
	}

	log.Info("analysis complete", "gaps", len(gaps), "duration", time.Since(start))
	return &types.AnalysisRecord{
		Summary:               summary,
		ResearchGaps:          gaps,
		SimplifiedExplanation: explanation,
		EducationLevel:        edu,
		Metadata:              &types.Metadata{AnalysisID: id},
	}, nil
}

func (a *Analyzer) summaryAndGaps(ctx context.Context, query, papers string) (string, []string, error) {
	summary, err := a.inv.Invoke(ctx, prompt.Summary(query, papers))
	if err != nil {
		return "", nil, &AnalysisError{Step: StepSummary, Err: err}
	}
	raw, err := a.inv.Invoke(ctx, prompt.Gaps(query, papers))
	if err != nil {
		return "", nil, &AnalysisError{Step: StepGaps, Err: err}
	}
	return summary, extract.Gaps(raw), nil
}

// summaryAndGapsConcurrent issues both invocations at once. The first
// failure cancels the sibling call.
func (a *Analyzer) summaryAndGapsConcurrent(ctx context.Context, query, papers string) (string, []string, error) {
	var summary, raw string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if summary, err = a.inv.Invoke(gctx, prompt.Summary(query, papers)); err != nil {
			return &AnalysisError{Step: StepSummary, Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if raw, err = a.inv.Invoke(gctx, prompt.Gaps(query, papers)); err != nil {
			return &AnalysisError{Step: StepGaps, Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	return summary, extract.Gaps(raw), nil
}

// fail wraps err in an AnalysisError for step, unless it already is one,
// and logs it.
func (a *Analyzer) fail(log *logging.Logger, step Step, err error) error {
	ae, ok := err.(*AnalysisError)
	if !ok {
		ae = &AnalysisError{Step: step, Err: err}
	}
	log.Error("analysis failed", "step", string(ae.Step), "error", ae.Err)
	return ae
}
