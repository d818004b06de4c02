// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-genie pipeline:
// the papers handed to an analysis, the audience and task tags that shape
// prompts, and the analysis record the pipeline returns.
package types

import (
	"strings"
	"time"
)

// Paper is a candidate paper supplied by the caller. The pipeline never
// mutates it.
type Paper struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order. May be empty.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the publication year, nil when unknown.
	Year *int `json:"year,omitempty" yaml:"year,omitempty"`

	// URL is the landing page or PDF location, if known.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// EducationLevel selects the audience framing of the simplified explanation.
type EducationLevel string

const (
	LevelHighSchool    EducationLevel = "high_school"
	LevelUndergraduate EducationLevel = "undergraduate"
	LevelGraduate      EducationLevel = "graduate"
	LevelPhD           EducationLevel = "phd"
	LevelGeneral       EducationLevel = "general"
)

// DefaultEducationLevel is used for empty or unrecognized levels.
const DefaultEducationLevel = LevelUndergraduate

var educationLevels = map[EducationLevel]bool{
	LevelHighSchool:    true,
	LevelUndergraduate: true,
	LevelGraduate:      true,
	LevelPhD:           true,
	LevelGeneral:       true,
}

// Valid reports whether l is one of the recognized levels.
func (l EducationLevel) Valid() bool {
	return educationLevels[l]
}

// ParseEducationLevel maps a caller-supplied tag to an EducationLevel.
// Matching ignores case and surrounding whitespace; anything unrecognized
// falls back to DefaultEducationLevel.
func ParseEducationLevel(s string) EducationLevel {
	l := EducationLevel(strings.ToLower(strings.TrimSpace(s)))
	if l.Valid() {
		return l
	}
	return DefaultEducationLevel
}

// TaskKind identifies a prompt/response contract.
type TaskKind string

const (
	TaskSummary               TaskKind = "summary"
	TaskGaps                  TaskKind = "gaps"
	TaskSimplifiedExplanation TaskKind = "simplified_explanation"
	TaskComparison            TaskKind = "comparison"
	TaskCitationAnalysis      TaskKind = "citation_analysis"
)

// TaskKinds lists every TaskKind in a stable order.
var TaskKinds = []TaskKind{
	TaskSummary,
	TaskGaps,
	TaskSimplifiedExplanation,
	TaskComparison,
	TaskCitationAnalysis,
}

// Metadata is attached by the formatter once a record passes validation.
type Metadata struct {
	// ProcessedAt is the UTC time the record was formatted.
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`

	// Version is the fixed output schema version.
	Version string `json:"version" yaml:"version"`

	// AnalysisID correlates the record with log lines for the same analysis.
	AnalysisID string `json:"analysis_id,omitempty" yaml:"analysis_id,omitempty"`
}

// AnalysisRecord is the result of analyzing one query against a PaperSet.
type AnalysisRecord struct {
	Summary               string         `json:"summary" yaml:"summary"`
	ResearchGaps          []string       `json:"research_gaps" yaml:"research_gaps"`
	SimplifiedExplanation string         `json:"simplified_explanation" yaml:"simplified_explanation"`
	EducationLevel        EducationLevel `json:"education_level" yaml:"education_level"`
	Metadata              *Metadata      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Fields returns the record as a generic mapping, the shape the output
// validator checks. A nil ResearchGaps slice is reported as absent.
func (r AnalysisRecord) Fields() map[string]any {
	fields := map[string]any{
		"summary":                r.Summary,
		"simplified_explanation": r.SimplifiedExplanation,
		"education_level":        string(r.EducationLevel),
	}
	if r.ResearchGaps != nil {
		fields["research_gaps"] = r.ResearchGaps
	}
	return fields
}
