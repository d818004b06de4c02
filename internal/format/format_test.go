// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/research-genie/internal/logging"
	"github.com/pdiddy/research-genie/pkg/types"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.FixedZone("X", 3600))

func testFormatter() *Formatter {
	f := New(nil)
	f.Now = func() time.Time { return fixedNow }
	return f
}

func validFields() map[string]any {
	return map[string]any{
		"summary":                "s",
		"research_gaps":          []string{"1. g"},
		"simplified_explanation": "e",
		"education_level":        "undergraduate",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
	}{
		{name: "valid", mutate: func(map[string]any) {}},
		{name: "generic list", mutate: func(m map[string]any) { m["research_gaps"] = []any{"a", 1} }},
		{name: "empty list", mutate: func(m map[string]any) { m["research_gaps"] = []string{} }},
		{name: "null summary is present", mutate: func(m map[string]any) { m["summary"] = nil }},
		{name: "null explanation is present", mutate: func(m map[string]any) { m["simplified_explanation"] = nil }},
		{name: "array", mutate: func(m map[string]any) { m["research_gaps"] = [2]string{"a", "b"} }},
		{name: "missing summary", mutate: func(m map[string]any) { delete(m, "summary") }, wantField: "summary"},
		{name: "missing gaps", mutate: func(m map[string]any) { delete(m, "research_gaps") }, wantField: "research_gaps"},
		{name: "null gaps is not a list", mutate: func(m map[string]any) { m["research_gaps"] = nil }, wantField: "research_gaps"},
		{name: "missing explanation", mutate: func(m map[string]any) { delete(m, "simplified_explanation") }, wantField: "simplified_explanation"},
		{name: "gaps as string", mutate: func(m map[string]any) { m["research_gaps"] = "1. a\n2. b" }, wantField: "research_gaps"},
		{name: "gaps as number", mutate: func(m map[string]any) { m["research_gaps"] = 7 }, wantField: "research_gaps"},
		{name: "gaps as mapping", mutate: func(m map[string]any) { m["research_gaps"] = map[string]any{"a": 1} }, wantField: "research_gaps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validFields()
			tt.mutate(m)
			err := Validate(m)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidAnalysisShape)
			var se *ShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantField, se.Field)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

// A record whose research_gaps is a plain string is rejected, naming the field.
func TestValidateGapsString(t *testing.T) {
	err := Validate(map[string]any{
		"summary":                "Quantum computers use qubits.",
		"research_gaps":          "1. Lack of longitudinal data",
		"simplified_explanation": "Imagine a coin spinning.",
	})
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "research_gaps", se.Field)
	assert.ErrorIs(t, err, ErrInvalidAnalysisShape)
}

func TestFormat(t *testing.T) {
	rec := types.AnalysisRecord{
		Summary:               "s",
		ResearchGaps:          []string{"1. g"},
		SimplifiedExplanation: "e",
		EducationLevel:        types.LevelGraduate,
		Metadata:              &types.Metadata{AnalysisID: "abc"},
	}

	out, err := testFormatter().Format(rec)
	require.NoError(t, err)
	require.NotNil(t, out.Metadata)
	assert.Equal(t, Version, out.Metadata.Version)
	assert.Equal(t, "abc", out.Metadata.AnalysisID)
	assert.True(t, out.Metadata.ProcessedAt.Equal(fixedNow))
	assert.Equal(t, time.UTC, out.Metadata.ProcessedAt.Location())

	assert.Equal(t, "abc", rec.Metadata.AnalysisID)
	assert.True(t, rec.Metadata.ProcessedAt.IsZero(), "input record is not modified")
}

func TestFormatRejectsNilGaps(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	f := New(logging.FromZap(zap.New(core)))

	out, err := f.Format(types.AnalysisRecord{Summary: "s", SimplifiedExplanation: "e"})
	assert.Nil(t, out)
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "research_gaps", se.Field)
	assert.Equal(t, 1, logs.FilterMessage("analysis record rejected").Len())
}

func TestFormatZeroValueFormatter(t *testing.T) {
	var f Formatter
	out, err := f.Format(types.AnalysisRecord{Summary: "s", ResearchGaps: []string{}, SimplifiedExplanation: "e"})
	require.NoError(t, err)
	assert.False(t, out.Metadata.ProcessedAt.IsZero())
}

func TestFormatFields(t *testing.T) {
	in := validFields()
	out, err := testFormatter().FormatFields(in)
	require.NoError(t, err)

	meta, ok := out["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, Version, meta["version"])
	assert.Equal(t, "2026-03-14T08:26:53Z", meta["processed_at"])
	assert.NotContains(t, in, "metadata")

	in["research_gaps"] = "scalar"
	_, err = testFormatter().FormatFields(in)
	assert.ErrorIs(t, err, ErrInvalidAnalysisShape)
}

func TestFormatError(t *testing.T) {
	f := testFormatter()

	r := f.FormatError("analysis could not be completed", "AnalysisFailed")
	assert.True(t, r.Error)
	assert.Equal(t, "AnalysisFailed", r.Kind)
	assert.Equal(t, "analysis could not be completed", r.Message)
	assert.True(t, r.Timestamp.Equal(fixedNow))

	assert.Equal(t, "InternalError", f.FormatError("x", "").Kind)
}

func TestFormatRefinement(t *testing.T) {
	f := testFormatter()
	r := f.FormatRefinement("What Is AI?", "what is ai research")
	assert.True(t, r.Refined)
	assert.Equal(t, "What Is AI?", r.OriginalQuery)
	assert.Equal(t, "what is ai research", r.RefinedQuery)

	assert.False(t, f.FormatRefinement("ai research", "ai research").Refined)
}

func TestFormatBatch(t *testing.T) {
	f := testFormatter()
	b := f.FormatBatch(nil)
	assert.Equal(t, 0, b.TotalProcessed)
	assert.NotNil(t, b.Results)

	errReport := f.FormatError("x", "AnalysisFailed")
	b = f.FormatBatch([]BatchItem{
		{Query: "a", Record: &types.AnalysisRecord{Summary: "s"}},
		{Query: "b", Error: &errReport},
	})
	assert.Equal(t, 2, b.TotalProcessed)
	assert.True(t, b.ProcessedAt.Equal(fixedNow))
}
