package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspectlens/aspectlens/internal/taxonomy"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	m, err := NewMatcher(reg)
	require.NoError(t, err)
	return m
}

func TestMatchCostValueDominates(t *testing.T) {
	m := newTestMatcher(t)

	contexts := []string{
		"The subscription cost is way too expensive.",
		"It feels overpriced for what you get.",
		"Honestly it is just too expensive.",
	}
	outcome := m.Match("subscription", contexts)

	require.NotEmpty(t, outcome.Ranked)
	assert.Equal(t, "cost_value", outcome.Dominant())
	assert.Equal(t, "cost_value", outcome.Ranked[0].Result.Category)
	assert.NotEmpty(t, outcome.Ranked[0].Result.OutcomeKey)
}

func TestMatchPerformanceCause(t *testing.T) {
	m := newTestMatcher(t)

	contexts := []string{
		"The dashboard is slow due to the server load.",
		"Everything gets slow due to the server again.",
	}
	outcome := m.Match("dashboard", contexts)

	require.NotEmpty(t, outcome.Ranked)
	primary := outcome.Ranked[0].Result
	assert.Equal(t, "performance_efficiency", primary.Category)
	assert.Equal(t, "performance_cause", primary.OutcomeKey)
	assert.Equal(t, "slow", primary.ProblemAdj)
	assert.Equal(t, "server", primary.CauseNoun)
	assert.Equal(t, "cause", primary.CauseType)
}

func TestMatchRankingByCount(t *testing.T) {
	m := newTestMatcher(t)

	// The same cost tuple twice against one performance match.
	contexts := []string{
		"The plan is too expensive.",
		"It is just too expensive.",
		"Also the app performance is slow.",
	}
	outcome := m.Match("plan", contexts)

	require.NotEmpty(t, outcome.Ranked)
	assert.Equal(t, "cost_value", outcome.Dominant())
	for i := 1; i < len(outcome.Ranked); i++ {
		assert.GreaterOrEqual(t, outcome.Ranked[i-1].Count, outcome.Ranked[i].Count)
	}
}

func TestMatchNoPatternsFallsBackToFrequency(t *testing.T) {
	m := newTestMatcher(t)

	contexts := []string{
		"The checkout kept rejecting my giftcard over and over.",
		"My giftcard never worked at checkout.",
	}
	outcome := m.Match("checkout", contexts)

	if len(outcome.Ranked) == 0 {
		assert.NotEmpty(t, outcome.SubjectNouns)
	}
}

func TestMatchEmptyContexts(t *testing.T) {
	m := newTestMatcher(t)

	outcome := m.Match("anything", nil)
	assert.Empty(t, outcome.Ranked)
	assert.Empty(t, outcome.ProblemWords)
	assert.Empty(t, outcome.SubjectNouns)
	assert.Equal(t, "", outcome.Dominant())
}

func TestMatchIsDeterministic(t *testing.T) {
	m := newTestMatcher(t)

	contexts := []string{"The support staff was rude and the wait times are too long."}
	first := m.Match("support", contexts)
	second := m.Match("support", contexts)
	assert.Equal(t, first, second)
}
