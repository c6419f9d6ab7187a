package report

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspectlens/aspectlens/internal/models"
	"github.com/aspectlens/aspectlens/internal/patterns"
	"github.com/aspectlens/aspectlens/internal/taxonomy"
)

var numberedLineRe = regexp.MustCompile(`^\d+\. `)

func newTestSynthesizer(t *testing.T, seed int64) *Synthesizer {
	t.Helper()
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	return NewSynthesizer(reg, rand.New(rand.NewSource(seed)))
}

// splitSections pulls the analysis and recommendation lines out of one
// generated block.
func splitSections(t *testing.T, text string) (analysis, recs []string) {
	t.Helper()
	parts := strings.Split(text, "**Actionable Recommendations:**")
	require.Len(t, parts, 2)

	head := strings.TrimPrefix(strings.TrimSpace(parts[0]), "**Analysis Overview:**")
	for _, line := range strings.Split(strings.TrimSpace(head), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			analysis = append(analysis, line)
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(parts[1]), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			recs = append(recs, line)
		}
	}
	return analysis, recs
}

func costOutcome() patterns.Outcome {
	return patterns.Outcome{
		Ranked: []patterns.Ranked{
			{
				Result: models.MatchResult{
					Category:    "cost_value",
					OutcomeKey:  "cost_value_comparison",
					ProblemAdj:  "overpriced",
					ProblemNoun: "price",
					CauseNoun:   "value",
					CauseType:   "cause",
				},
				Count: 3,
			},
			{
				Result: models.MatchResult{
					Category:    "cost_value",
					OutcomeKey:  "lack_of_value",
					ProblemAdj:  "expensive",
					ProblemNoun: "fee",
					CauseNoun:   "quality",
					CauseType:   "cause",
				},
				Count: 1,
			},
		},
	}
}

func TestGenerateMatchedOutcome(t *testing.T) {
	s := newTestSynthesizer(t, 42)
	contexts := []string{"too expensive", "overpriced for what you get", "way too expensive"}

	text := s.Generate("subscription_plan", contexts, costOutcome())

	assert.Contains(t, text, "**Analysis Overview:**")
	assert.Contains(t, text, "**Actionable Recommendations:**")
	assert.Contains(t, text, "Subscription Plan")
	assert.NotContains(t, text, "{aspect_name}")
	assert.NotContains(t, text, "{problem_adj}")
	assert.NotContains(t, text, "{fix_verb}")

	analysis, recs := splitSections(t, text)
	assert.GreaterOrEqual(t, len(analysis), 4)
	require.Len(t, recs, 4)
	for _, rec := range recs {
		assert.Regexp(t, numberedLineRe, rec)
	}

	// Primary line comes from the dominant outcome's theme.
	assert.Contains(t, analysis[0], "**overpriced**")
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	outcome := costOutcome()
	contexts := []string{"too expensive"}

	first := newTestSynthesizer(t, 7).Generate("plan", contexts, outcome)
	second := newTestSynthesizer(t, 7).Generate("plan", contexts, outcome)
	assert.Equal(t, first, second)
}

func TestGenerateFrequencyFallback(t *testing.T) {
	s := newTestSynthesizer(t, 1)
	outcome := patterns.Outcome{
		ProblemWords: []string{"crash", "delay"},
		SubjectNouns: []string{"exporter"},
	}

	text := s.Generate("reporting", []string{"the exporter crashes"}, outcome)
	analysis, recs := splitSections(t, text)

	require.NotEmpty(t, analysis)
	assert.Contains(t, analysis[0], "**crash**")
	assert.Contains(t, analysis[0], "**exporter**")

	// The no-pattern path emits the fixed five-step plan.
	require.Len(t, recs, 5)
	for _, rec := range recs {
		assert.Regexp(t, numberedLineRe, rec)
	}
}

func TestGenerateEmptyOutcome(t *testing.T) {
	s := newTestSynthesizer(t, 1)

	text := s.Generate("anything", nil, patterns.Outcome{})
	analysis, recs := splitSections(t, text)

	assert.GreaterOrEqual(t, len(analysis), 3)
	assert.Contains(t, analysis[0], "diverse")
	require.Len(t, recs, 5)
}

func TestGenerateFillsFallbackSlots(t *testing.T) {
	s := newTestSynthesizer(t, 3)
	outcome := patterns.Outcome{
		Ranked: []patterns.Ranked{{
			Result: models.MatchResult{Category: "service_quality", OutcomeKey: "general"},
			Count:  1,
		}},
	}

	text := s.Generate("support", []string{"something vague"}, outcome)
	assert.Contains(t, text, patterns.FallbackAdjective)
	assert.NotContains(t, text, "{problem_noun}")
	assert.NotContains(t, text, "{cause_or_effect_noun}")
}

func TestNumberLines(t *testing.T) {
	got := numberLines([]string{
		"1. Already numbered.",
		"Needs a number.",
		"3. Keeps its own ordinal.",
	})
	assert.Equal(t, "1. Already numbered.", got[0])
	assert.Equal(t, "2. Needs a number.", got[1])
	assert.Equal(t, "3. Keeps its own ordinal.", got[2])
}
