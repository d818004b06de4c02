// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt renders task instructions and paper context into a single
// text prompt for the model gateway. Every function here is pure: identical
// inputs always render identical prompts.
package prompt

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/pdiddy/research-genie/pkg/types"
)

// audiences maps each EducationLevel to the phrase describing the reader.
var audiences = map[types.EducationLevel]string{
	types.LevelHighSchool:    "a high school student with basic knowledge",
	types.LevelUndergraduate: "an undergraduate student with foundational knowledge",
	types.LevelGraduate:      "a graduate student with advanced knowledge",
	types.LevelPhD:           "a PhD researcher with expert-level knowledge",
	types.LevelGeneral:       "a general audience with no specialized knowledge",
}

// Audience returns the audience phrase for level. Unrecognized levels get
// the undergraduate phrase.
func Audience(level types.EducationLevel) string {
	if a, ok := audiences[level]; ok {
		return a
	}
	return audiences[types.DefaultEducationLevel]
}

// FormatPapers renders papers as a numbered block, 1-indexed in input order.
// Entries are separated by a blank line.
func FormatPapers(papers []types.Paper) string {
	entries := make([]string, 0, len(papers))
	for i, p := range papers {
		year := "N/A"
		if p.Year != nil {
			year = strconv.Itoa(*p.Year)
		}
		entries = append(entries, fmt.Sprintf(
			"Paper %d:\nTitle: %s\nAbstract: %s\nAuthors: %s\nYear: %s\n",
			i+1, p.Title, p.Abstract, strings.Join(p.Authors, ", "), year,
		))
	}
	return strings.Join(entries, "\n\n")
}

// Input carries everything a template may reference. Each task uses a subset:
// summary and gaps use Query and Papers; simplified_explanation uses Query,
// Summary and Level; comparison and citation_analysis use Papers only.
type Input struct {
	Query   string
	Papers  string
	Summary string
	Level   types.EducationLevel
}

var templates = map[types.TaskKind]*template.Template{
	types.TaskSummary:               template.Must(template.New("summary").Parse(summaryTmpl)),
	types.TaskGaps:                  template.Must(template.New("gaps").Parse(gapsTmpl)),
	types.TaskSimplifiedExplanation: template.Must(template.New("simplified_explanation").Parse(explanationTmpl)),
	types.TaskComparison:            template.Must(template.New("comparison").Parse(comparisonTmpl)),
	types.TaskCitationAnalysis:      template.Must(template.New("citation_analysis").Parse(citationTmpl)),
}

// Build renders the prompt for kind. It fails only for an unknown kind.
func Build(kind types.TaskKind, in Input) (string, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("unknown task kind %q", kind)
	}
	data := struct {
		Input
		Audience string
	}{Input: in, Audience: Audience(in.Level)}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", kind, err)
	}
	return buf.String(), nil
}

// mustBuild is used by the per-task helpers whose kinds are always registered.
func mustBuild(kind types.TaskKind, in Input) string {
	s, err := Build(kind, in)
	if err != nil {
		panic(err)
	}
	return s
}

// Summary renders the summary prompt.
func Summary(query, papers string) string {
	return mustBuild(types.TaskSummary, Input{Query: query, Papers: papers})
}

// Gaps renders the research-gaps prompt, which asks for a numbered list.
func Gaps(query, papers string) string {
	return mustBuild(types.TaskGaps, Input{Query: query, Papers: papers})
}

// SimplifiedExplanation renders the explanation prompt for the given audience.
func SimplifiedExplanation(query, summary string, level types.EducationLevel) string {
	return mustBuild(types.TaskSimplifiedExplanation, Input{Query: query, Summary: summary, Level: level})
}

// Comparison renders the paper comparison prompt.
func Comparison(papers string) string {
	return mustBuild(types.TaskComparison, Input{Papers: papers})
}

// CitationAnalysis renders the citation-pattern prompt.
func CitationAnalysis(papers string) string {
	return mustBuild(types.TaskCitationAnalysis, Input{Papers: papers})
}

// ParseTaskKind validates a task tag against types.TaskKinds.
func ParseTaskKind(s string) (types.TaskKind, error) {
	k := types.TaskKind(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(types.TaskKinds, k) {
		return "", fmt.Errorf("unknown task kind %q (want one of %s)", s, TaskKindList())
	}
	return k, nil
}

// TaskKindList joins types.TaskKinds for help and error text.
func TaskKindList() string {
	names := make([]string, len(types.TaskKinds))
	for i, k := range types.TaskKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

const summaryTmpl = `You are a research assistant helping to summarize academic papers.

User's Research Query: {{.Query}}

Research Papers:
{{.Papers}}

Task: Provide a comprehensive summary of these research papers in the context of the user's query.
Focus on:
1. Main findings and contributions
2. Methodologies used
3. Key results and conclusions
4. Relevance to the user's query

Keep the summary concise but informative (300-500 words).
`

const gapsTmpl = `You are a research analyst identifying gaps in current research.

User's Research Query: {{.Query}}

Research Papers:
{{.Papers}}

Task: Identify and list the research gaps based on these papers.
Consider:
1. Areas not adequately addressed
2. Limitations mentioned by authors
3. Future research directions suggested
4. Missing perspectives or methodologies
5. Contradictions or inconsistencies in findings

Provide 5-7 specific research gaps as a numbered list.
Each gap should be clear, specific, and actionable.
`

const explanationTmpl = `You are an educator explaining research concepts.

User's Research Query: {{.Query}}

Research Summary:
{{.Summary}}

Target Audience: {{.Audience}}

Task: Explain the research findings in a way that {{.Audience}} can understand.

Guidelines:
1. Use appropriate language complexity for the education level
2. Include relevant examples or analogies
3. Avoid jargon unless it's appropriate for the level (then define it)
4. Focus on practical implications and real-world applications
5. Keep it engaging and accessible

Provide a clear, educational explanation (200-300 words).
`

const comparisonTmpl = `You are a research analyst comparing academic papers.

Research Papers:
{{.Papers}}

Task: Compare and contrast these research papers.
Focus on:
1. Similarities in methodology and approach
2. Differences in findings and conclusions
3. Complementary insights
4. Contradictions or conflicts
5. Evolution of ideas across different publications

Provide a structured comparison highlighting key similarities and differences.
`

const citationTmpl = `You are a research analyst examining citation patterns and research impact.

Research Papers:
{{.Papers}}

Task: Analyze the citation patterns and research impact.
Consider:
1. Influential papers in the field
2. Common citations across papers
3. Research trends based on publication years
4. Key authors and research groups
5. Emerging vs. established research areas

Provide insights about the research landscape and key contributors.
`
