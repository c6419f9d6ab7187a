package report

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspectlens/aspectlens/internal/models"
	"github.com/aspectlens/aspectlens/internal/patterns"
	"github.com/aspectlens/aspectlens/internal/taxonomy"
)

func negRecord(aspect, context string) models.AspectRecord {
	return models.AspectRecord{
		ReviewNo:  1,
		Aspect:    aspect,
		Sentiment: models.SentimentNegative,
		Score:     0.9,
		Context:   context,
	}
}

func TestTopNegativeAspects(t *testing.T) {
	records := []models.AspectRecord{
		negRecord("Battery Life", "battery drains fast"),
		negRecord("battery life", "battery drains fast"),
		negRecord("Battery Life", "dies within hours"),
		negRecord("Camera", "photos are blurry"),
		{ReviewNo: 2, Aspect: "Screen", Sentiment: models.SentimentPositive, Context: "looks great"},
	}

	top := TopNegativeAspects(records, 5)
	require.Len(t, top, 2)

	// Grouping is case-insensitive and counts every mention, but contexts
	// de-duplicate.
	assert.Equal(t, "battery life", top[0].Aspect)
	assert.Equal(t, "Battery Life", top[0].DisplayName)
	assert.Equal(t, 3, top[0].NegativeCount)
	assert.Equal(t, []string{"battery drains fast", "dies within hours"}, top[0].SampleContexts)

	assert.Equal(t, "camera", top[1].Aspect)
	assert.Equal(t, 1, top[1].NegativeCount)
}

func TestTopNegativeAspectsHonorsLimit(t *testing.T) {
	records := []models.AspectRecord{
		negRecord("a1", "c"), negRecord("a2", "c"), negRecord("a3", "c"),
	}
	assert.Len(t, TopNegativeAspects(records, 2), 2)
}

func TestBreakdown(t *testing.T) {
	records := []models.AspectRecord{
		negRecord("battery life", "x"),
		negRecord("Battery Life", "y"),
		{Aspect: "battery life", Sentiment: models.SentimentPositive},
		{Aspect: "camera", Sentiment: models.SentimentNeutral},
	}

	rows := Breakdown(records)
	require.Len(t, rows, 2)

	assert.Equal(t, "Battery Life", rows[0].Aspect)
	assert.Equal(t, 1, rows[0].Positive)
	assert.Equal(t, 0, rows[0].Neutral)
	assert.Equal(t, 2, rows[0].Negative)
	assert.Equal(t, 3, rows[0].Total)

	assert.Equal(t, "Camera", rows[1].Aspect)
	assert.Equal(t, 1, rows[1].Neutral)
	assert.Equal(t, 1, rows[1].Total)
}

func TestBuilderBuild(t *testing.T) {
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	matcher, err := patterns.NewMatcher(reg)
	require.NoError(t, err)
	synth := NewSynthesizer(reg, rand.New(rand.NewSource(11)))

	records := []models.AspectRecord{
		negRecord("subscription", "the subscription is way too expensive"),
		negRecord("subscription", "totally overpriced for what you get"),
		negRecord("checkout", "checkout kept failing"),
	}

	analyses := NewBuilder(matcher, synth, 1).Build(records)
	require.Len(t, analyses, 1)

	a := analyses[0]
	assert.Equal(t, "subscription", a.Aspect)
	assert.Equal(t, "Subscription", a.DisplayName)
	assert.Equal(t, 2, a.NegativeCount)
	assert.LessOrEqual(t, len(a.SampleContexts), maxSampleContexts)
	assert.Contains(t, a.Text, "**Analysis Overview:**")
	assert.Contains(t, a.Text, "**Actionable Recommendations:**")
}

func TestBuilderBuildNoNegatives(t *testing.T) {
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	matcher, err := patterns.NewMatcher(reg)
	require.NoError(t, err)
	synth := NewSynthesizer(reg, rand.New(rand.NewSource(11)))

	records := []models.AspectRecord{
		{Aspect: "screen", Sentiment: models.SentimentPositive},
	}
	assert.Empty(t, NewBuilder(matcher, synth, 0).Build(records))
}
