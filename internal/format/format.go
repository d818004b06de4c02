// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format validates assembled analysis records and wraps pipeline
// output in the envelopes returned to callers.
package format

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/pdiddy/research-genie/internal/logging"
	"github.com/pdiddy/research-genie/pkg/types"
)

// Version is the output schema version stamped on every record.
const Version = "1.0.0"

// ErrInvalidAnalysisShape marks a record that fails structural validation.
// Use errors.As with *ShapeError for the offending field.
var ErrInvalidAnalysisShape = errors.New("invalid analysis shape")

// ShapeError names the field that failed validation.
type ShapeError struct {
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidAnalysisShape, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidAnalysisShape) match any ShapeError.
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidAnalysisShape
}

// requiredFields are checked in this order; the first failure is reported.
var requiredFields = []string{"summary", "research_gaps", "simplified_explanation"}

// Validate checks that fields holds every required key and that
// research_gaps is a sequence. A key present with a nil value counts as
// present; values of the text fields are not inspected.
func Validate(fields map[string]any) error {
	for _, f := range requiredFields {
		if _, ok := fields[f]; !ok {
			return &ShapeError{Field: f, Reason: "missing required field"}
		}
	}
	if !isSequence(fields["research_gaps"]) {
		return &ShapeError{
			Field:  "research_gaps",
			Reason: fmt.Sprintf("expected a list, got %T", fields["research_gaps"]),
		}
	}
	return nil
}

// isSequence reports whether v is a slice or array. Strings do not count.
func isSequence(v any) bool {
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// Formatter validates records and stamps them with metadata.
type Formatter struct {
	// Now returns the processing time. Defaults to time.Now.
	Now func() time.Time

	log *logging.Logger
}

// New returns a Formatter using the wall clock.
func New(log *logging.Logger) *Formatter {
	return &Formatter{Now: time.Now, log: logging.OrNop(log)}
}

func (f *Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now().UTC()
	}
	return f.Now().UTC()
}

// Format validates rec and attaches metadata. An analysis id already set on
// rec.Metadata is kept. rec is not modified; the enriched copy is returned.
func (f *Formatter) Format(rec types.AnalysisRecord) (*types.AnalysisRecord, error) {
	log := logging.OrNop(f.log)
	if err := Validate(rec.Fields()); err != nil {
		log.Error("analysis record rejected", "error", err)
		return nil, err
	}

	meta := types.Metadata{ProcessedAt: f.now(), Version: Version}
	if rec.Metadata != nil {
		meta.AnalysisID = rec.Metadata.AnalysisID
	}
	rec.Metadata = &meta
	log.Debug("analysis record formatted", "analysis_id", meta.AnalysisID, "gaps", len(rec.ResearchGaps))
	return &rec, nil
}

// FormatFields validates a generic mapping and returns a copy with a
// "metadata" entry attached.
func (f *Formatter) FormatFields(fields map[string]any) (map[string]any, error) {
	if err := Validate(fields); err != nil {
		logging.OrNop(f.log).Error("analysis record rejected", "error", err)
		return nil, err
	}
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["metadata"] = map[string]any{
		"processed_at": f.now().Format(time.RFC3339),
		"version":      Version,
	}
	return out, nil
}
