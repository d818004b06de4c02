package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-genie/pkg/types"
)

func TestGaps(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "numbered list with trailing note",
			raw:  "1. Lack of longitudinal data\n2. No cross-cultural studies\nNote: see appendix",
			want: []string{"1. Lack of longitudinal data", "2. No cross-cultural studies"},
		},
		{
			name: "indented lines are trimmed, marker kept",
			raw:  "Here are the gaps:\n\n   1) Small samples  \n\t2) No replication\r\n10. Missing baselines",
			want: []string{"1) Small samples", "2) No replication", "10. Missing baselines"},
		},
		{
			name: "digit-led prose counts",
			raw:  "2020 saw few studies on this.\n- bullet ignored",
			want: []string{"2020 saw few studies on this."},
		},
		{
			name: "bullets only fall back to whole response",
			raw:  "  - gap one\n- gap two\n",
			want: []string{"  - gap one\n- gap two\n"},
		},
		{
			name: "empty response falls back",
			raw:  "",
			want: []string{""},
		},
		{
			name: "blank lines only fall back untrimmed",
			raw:  "\n  \n",
			want: []string{"\n  \n"},
		},
		{
			name: "no renumbering or dedup",
			raw:  "3. same\n3. same\n1. first",
			want: []string{"3. same", "3. same", "1. first"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Gaps(tt.raw))
		})
	}
}

func TestGapsNeverEmpty(t *testing.T) {
	inputs := []string{"", " ", "\n", "text", "1", "a\n1\nb", "•1 not a digit start"}
	for _, raw := range inputs {
		assert.NotEmpty(t, Gaps(raw), "raw %q", raw)
	}
}

func TestGapsDigitLinesInOrder(t *testing.T) {
	raw := "intro\n4. d\nmiddle\n 2. b \n9 z\noutro"
	got := Gaps(raw)

	var want []string
	for _, line := range strings.Split(raw, "\n") {
		tl := strings.TrimSpace(line)
		if tl != "" && tl[0] >= '0' && tl[0] <= '9' {
			want = append(want, tl)
		}
	}
	assert.Equal(t, want, got)
}

func TestExtract(t *testing.T) {
	res, err := Extract(types.TaskGaps, "1. a\n2. b")
	require.NoError(t, err)
	assert.Equal(t, []string{"1. a", "2. b"}, res.Items)
	assert.Empty(t, res.Text)

	for _, kind := range []types.TaskKind{types.TaskSummary, types.TaskSimplifiedExplanation, types.TaskComparison, types.TaskCitationAnalysis} {
		res, err := Extract(kind, "  raw text\n1. kept verbatim ")
		require.NoError(t, err, kind)
		assert.Equal(t, "  raw text\n1. kept verbatim ", res.Text, kind)
		assert.Nil(t, res.Items, kind)
	}

	_, err = Extract("limerick", "x")
	assert.Error(t, err)
}
