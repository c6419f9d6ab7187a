// Package report turns the aspect detail table into the final analysis:
// the worst-scoring aspects, their narrative text, and the per-aspect
// sentiment breakdown.
package report

import (
	"sort"
	"strings"

	"github.com/aspectlens/aspectlens/config"
	"github.com/aspectlens/aspectlens/internal/models"
	"github.com/aspectlens/aspectlens/internal/patterns"
	"github.com/aspectlens/aspectlens/internal/textproc"
)

const maxSampleContexts = 3

// Builder assembles per-aspect analyses from the detail records.
type Builder struct {
	matcher *patterns.Matcher
	synth   *Synthesizer
	topN    int
}

func NewBuilder(matcher *patterns.Matcher, synth *Synthesizer, topN int) *Builder {
	if topN <= 0 {
		topN = config.DefaultTopAspects
	}
	return &Builder{matcher: matcher, synth: synth, topN: topN}
}

// aspectGroup collects one aspect's negative mentions. Aspects are grouped
// case-insensitively; contexts are de-duplicated in first-seen order.
type aspectGroup struct {
	key      string
	count    int
	contexts []string
	seen     map[string]struct{}
}

// Build returns the top-N negative aspects with generated narrative text,
// ordered by negative mention count descending (ties keep first-seen order).
func (b *Builder) Build(records []models.AspectRecord) []models.AspectAnalysis {
	groups := negativeGroups(records)
	if len(groups) > b.topN {
		groups = groups[:b.topN]
	}

	analyses := make([]models.AspectAnalysis, 0, len(groups))
	for _, g := range groups {
		outcome := b.matcher.Match(g.key, g.contexts)
		text := b.synth.Generate(g.key, g.contexts, outcome)

		samples := g.contexts
		if len(samples) > maxSampleContexts {
			samples = samples[:maxSampleContexts]
		}
		analyses = append(analyses, models.AspectAnalysis{
			Aspect:         g.key,
			DisplayName:    displayName(g.key),
			NegativeCount:  g.count,
			SampleContexts: samples,
			Text:           text,
		})
	}
	return analyses
}

// TopNegativeAspects returns the n most-mentioned negative aspects with
// their unique contexts, without generating narrative text.
func TopNegativeAspects(records []models.AspectRecord, n int) []models.AspectAnalysis {
	groups := negativeGroups(records)
	if n > 0 && len(groups) > n {
		groups = groups[:n]
	}
	out := make([]models.AspectAnalysis, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.AspectAnalysis{
			Aspect:         g.key,
			DisplayName:    displayName(g.key),
			NegativeCount:  g.count,
			SampleContexts: g.contexts,
		})
	}
	return out
}

func negativeGroups(records []models.AspectRecord) []*aspectGroup {
	byKey := make(map[string]*aspectGroup)
	var order []*aspectGroup

	for _, rec := range records {
		if rec.Sentiment != models.SentimentNegative {
			continue
		}
		key := strings.ToLower(rec.Aspect)
		g, ok := byKey[key]
		if !ok {
			g = &aspectGroup{key: key, seen: make(map[string]struct{})}
			byKey[key] = g
			order = append(order, g)
		}
		g.count++
		if _, dup := g.seen[rec.Context]; !dup {
			g.seen[rec.Context] = struct{}{}
			g.contexts = append(g.contexts, rec.Context)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})
	return order
}

// Breakdown tallies sentiment counts per aspect across all records,
// ordered by total mentions descending.
func Breakdown(records []models.AspectRecord) []models.AspectBreakdown {
	byKey := make(map[string]*models.AspectBreakdown)
	var order []*models.AspectBreakdown

	for _, rec := range records {
		key := strings.ToLower(rec.Aspect)
		b, ok := byKey[key]
		if !ok {
			b = &models.AspectBreakdown{Aspect: displayName(key)}
			byKey[key] = b
			order = append(order, b)
		}
		switch rec.Sentiment {
		case models.SentimentPositive:
			b.Positive++
		case models.SentimentNegative:
			b.Negative++
		default:
			b.Neutral++
		}
		b.Total++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Total > order[j].Total
	})

	out := make([]models.AspectBreakdown, 0, len(order))
	for _, b := range order {
		out = append(out, *b)
	}
	return out
}

func displayName(key string) string {
	return textproc.TitleWords(strings.ReplaceAll(key, "_", " "))
}
