// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-genie/pkg/types"
)

func year(y int) *int { return &y }

func samplePapers() []types.Paper {
	return []types.Paper{
		{
			Title:    "Attention Is All You Need",
			Abstract: "We propose the Transformer.",
			Authors:  []string{"Vaswani", "Shazeer", "Parmar"},
			Year:     year(2017),
		},
		{
			Title:    "Untitled preprint",
			Abstract: "No authors listed.",
		},
		{
			Title:    "BERT",
			Abstract: "Bidirectional encoders.",
			Authors:  []string{"Devlin"},
			Year:     year(2019),
			URL:      "https://arxiv.org/abs/1810.04805",
		},
	}
}

var entryHeader = regexp.MustCompile(`(?m)^Paper (\d+):$`)

func TestFormatPapersNumbering(t *testing.T) {
	for n := 0; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d papers", n), func(t *testing.T) {
			papers := make([]types.Paper, n)
			for i := range papers {
				papers[i] = types.Paper{Title: fmt.Sprintf("T%d", i), Abstract: "A"}
			}
			out := FormatPapers(papers)

			matches := entryHeader.FindAllStringSubmatch(out, -1)
			require.Len(t, matches, n)
			for i, m := range matches {
				assert.Equal(t, fmt.Sprint(i+1), m[1])
			}
			// Order is preserved.
			last := -1
			for i := range papers {
				idx := strings.Index(out, fmt.Sprintf("Title: T%d\n", i))
				require.Greater(t, idx, last)
				last = idx
			}
		})
	}
}

func TestFormatPapersEntry(t *testing.T) {
	out := FormatPapers(samplePapers())

	assert.Contains(t, out, "Paper 1:\nTitle: Attention Is All You Need\nAbstract: We propose the Transformer.\nAuthors: Vaswani, Shazeer, Parmar\nYear: 2017\n")
	assert.Contains(t, out, "Paper 2:\nTitle: Untitled preprint\nAbstract: No authors listed.\nAuthors: \nYear: N/A\n")
	assert.Contains(t, out, "Authors: Devlin\nYear: 2019\n")
	assert.Contains(t, out, "Year: 2017\n\n\nPaper 2:")
	assert.NotContains(t, out, "arxiv.org", "urls are not rendered")
}

func TestFormatPapersEmpty(t *testing.T) {
	assert.Equal(t, "", FormatPapers(nil))
}

func TestAudience(t *testing.T) {
	tests := []struct {
		level types.EducationLevel
		want  string
	}{
		{types.LevelHighSchool, "a high school student with basic knowledge"},
		{types.LevelUndergraduate, "an undergraduate student with foundational knowledge"},
		{types.LevelGraduate, "a graduate student with advanced knowledge"},
		{types.LevelPhD, "a PhD researcher with expert-level knowledge"},
		{types.LevelGeneral, "a general audience with no specialized knowledge"},
		{"", "an undergraduate student with foundational knowledge"},
		{"postdoc", "an undergraduate student with foundational knowledge"},
		{"PHD", "an undergraduate student with foundational knowledge"},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.want, Audience(tt.level))
		})
	}
}

func TestSummaryPrompt(t *testing.T) {
	papers := FormatPapers(samplePapers())
	p := Summary("transformers research", papers)

	assert.Contains(t, p, "User's Research Query: transformers research\n")
	assert.Contains(t, p, "Research Papers:\n"+papers+"\n")
	assert.Contains(t, p, "(300-500 words)")
}

func TestGapsPrompt(t *testing.T) {
	p := Gaps("q", "PAPERS")
	assert.Contains(t, p, "User's Research Query: q\n")
	assert.Contains(t, p, "Research Papers:\nPAPERS\n")
	assert.Contains(t, p, "as a numbered list")
}

func TestSimplifiedExplanationPrompt(t *testing.T) {
	p := SimplifiedExplanation("q", "the summary", types.LevelHighSchool)
	assert.Contains(t, p, "Research Summary:\nthe summary\n")
	assert.Contains(t, p, "Target Audience: a high school student with basic knowledge\n")
	assert.Contains(t, p, "in a way that a high school student with basic knowledge can understand")

	fallback := SimplifiedExplanation("q", "s", "unknown")
	assert.Contains(t, fallback, "Target Audience: an undergraduate student with foundational knowledge\n")
}

func TestComparisonAndCitationPrompts(t *testing.T) {
	c := Comparison("PAPERS")
	assert.Contains(t, c, "Compare and contrast these research papers.")
	assert.Contains(t, c, "Research Papers:\nPAPERS\n")
	assert.NotContains(t, c, "User's Research Query")

	ca := CitationAnalysis("PAPERS")
	assert.Contains(t, ca, "Analyze the citation patterns and research impact.")
	assert.Contains(t, ca, "Research Papers:\nPAPERS\n")
}

func TestBuildDeterministic(t *testing.T) {
	in := Input{Query: "q", Papers: FormatPapers(samplePapers()), Summary: "s", Level: types.LevelPhD}
	for _, kind := range types.TaskKinds {
		t.Run(string(kind), func(t *testing.T) {
			a, err := Build(kind, in)
			require.NoError(t, err)
			b, err := Build(kind, in)
			require.NoError(t, err)
			assert.Equal(t, a, b)
			assert.NotEmpty(t, a)
		})
	}
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build("poem", Input{})
	require.Error(t, err)
}

func TestBuildDoesNotEscape(t *testing.T) {
	p := Summary(`<b>"quotes" & ampersands</b>`, "")
	assert.Contains(t, p, `<b>"quotes" & ampersands</b>`)
}

func TestParseTaskKind(t *testing.T) {
	k, err := ParseTaskKind(" Citation_Analysis ")
	require.NoError(t, err)
	assert.Equal(t, types.TaskCitationAnalysis, k)

	_, err = ParseTaskKind("haiku")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary, gaps, simplified_explanation, comparison, citation_analysis")
}
