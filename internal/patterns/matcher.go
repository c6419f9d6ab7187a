// Package patterns matches an aspect's pool of negative sentence contexts
// against the problem taxonomy and ranks the explanations.
//
// The upstream design used full dependency parses; no Go library provides
// those, so the pattern stage runs on POS tags, lemmas, and per-category
// regular expressions instead. Cause/effect nouns are read from the token
// following the causal connective rather than from a parse relation.
package patterns

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"

	"github.com/aspectlens/aspectlens/internal/models"
	"github.com/aspectlens/aspectlens/internal/stopwords"
	"github.com/aspectlens/aspectlens/internal/taxonomy"
)

// Fallback fillers for template slots a match could not populate.
const (
	FallbackAdjective = "unspecified negative"
	FallbackNoun      = "issue"
	FallbackCause     = "general factors"
)

var (
	causalCueRe  = regexp.MustCompile(`\b(?:due to|because)\b`)
	effectCueRe  = regexp.MustCompile(`\b(?:caus(?:e|es|ed|ing)|lead(?:s|ing)?)\b`)
	causeNounRe  = regexp.MustCompile(`\b(?:due to|because of|because)\s+(?:the\s+|a\s+|an\s+|its\s+|their\s+)?([a-z]+)`)
	effectNounRe = regexp.MustCompile(`\b(?:caus(?:e|es|ed|ing)|lead(?:s|ing)?)\s+(?:to\s+)?(?:the\s+|a\s+|an\s+)?([a-z]+)`)
	wordRe       = regexp.MustCompile(`[a-z]+`)
)

// causeKeyByCategory names the outcome key a causal connective selects.
// Categories without a cause theme keep the general key.
var causeKeyByCategory = map[string]string{
	"performance_efficiency": "performance_cause",
	"usability_complexity":   "usability_cause",
	"service_quality":        "service_cause",
}

// Ranked is one tallied MatchResult with its match count.
type Ranked struct {
	Result models.MatchResult
	Count  int
}

// Outcome is everything the matcher learned from one aspect's negative
// pool. Ranked is ordered by count descending, ties in first-encountered
// order; ProblemWords and SubjectNouns back the fallback ladder.
type Outcome struct {
	Ranked       []Ranked
	ProblemWords []string
	SubjectNouns []string
}

// Dominant returns the primary pattern's category, or "" when nothing
// matched.
func (o Outcome) Dominant() string {
	if len(o.Ranked) == 0 {
		return ""
	}
	return o.Ranked[0].Result.Category
}

// Matcher runs the taxonomy's patterns. Safe for reuse across aspects.
type Matcher struct {
	reg *taxonomy.Registry
	lem *golem.Lemmatizer
}

func NewMatcher(reg *taxonomy.Registry) (*Matcher, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("init lemmatizer: %w", err)
	}
	return &Matcher{reg: reg, lem: lem}, nil
}

// Match analyzes one aspect's negative contexts. Empty or pathological
// input is fine: the Outcome simply carries no ranked patterns and no
// fallback words, and the synthesizer renders the fixed fallback text.
func (m *Matcher) Match(aspect string, contexts []string) Outcome {
	aspectLemma := strings.ToLower(strings.ReplaceAll(aspect, "_", " "))
	allText := strings.ToLower(strings.Join(contexts, " "))

	problemWords, subjectNouns := m.frequencySignals(allText, aspectLemma)

	tally := make(map[models.MatchResult]int)
	var order []models.MatchResult

	for _, cat := range m.reg.Categories {
		for _, re := range cat.Compiled() {
			for _, loc := range re.FindAllStringIndex(allText, -1) {
				span := allText[loc[0]:loc[1]]
				result := m.analyzeSpan(cat, span, aspectLemma, problemWords)
				if _, seen := tally[result]; !seen {
					order = append(order, result)
				}
				tally[result]++
			}
		}
	}

	ranked := make([]Ranked, 0, len(order))
	for _, res := range order {
		ranked = append(ranked, Ranked{Result: res, Count: tally[res]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	return Outcome{
		Ranked:       ranked,
		ProblemWords: problemWords,
		SubjectNouns: subjectNouns,
	}
}

// frequencySignals computes the lemma-frequency fallback lists: known
// problem words, and candidate subject nouns outside the problem vocab.
// Stop words, punctuation, and the aspect's own name are excluded.
func (m *Matcher) frequencySignals(allText, aspectLemma string) (problemWords, subjectNouns []string) {
	type lemmaInfo struct {
		count int
		first int
		noun  bool
	}

	doc, err := prose.NewDocument(allText, prose.WithExtraction(false))
	if err != nil {
		return nil, nil
	}

	counts := make(map[string]*lemmaInfo)
	var seen []string
	for i, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		if !isAlpha(word) || stopwords.IsStopword(word) {
			continue
		}
		lemma := m.lem.Lemma(word)
		if lemma == aspectLemma || stopwords.IsStopword(lemma) {
			continue
		}
		info, ok := counts[lemma]
		if !ok {
			info = &lemmaInfo{first: i}
			counts[lemma] = info
			seen = append(seen, lemma)
		}
		info.count++
		if strings.HasPrefix(tok.Tag, "N") {
			info.noun = true
		}
	}

	sort.SliceStable(seen, func(i, j int) bool {
		a, b := counts[seen[i]], counts[seen[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.first < b.first
	})

	for _, lemma := range seen {
		if m.reg.IsNegativeAdjective(lemma) || m.reg.IsProblemNoun(lemma) {
			problemWords = append(problemWords, lemma)
			continue
		}
		if len(lemma) > 2 && counts[lemma].noun {
			subjectNouns = append(subjectNouns, lemma)
		}
	}
	return problemWords, subjectNouns
}

// analyzeSpan derives the MatchResult tuple for one regex match.
func (m *Matcher) analyzeSpan(cat *taxonomy.Category, span, aspectLemma string, problemWords []string) models.MatchResult {
	result := models.MatchResult{Category: cat.Name, OutcomeKey: m.outcomeKey(cat, span, aspectLemma)}

	for _, word := range wordRe.FindAllString(span, -1) {
		lemma := m.lem.Lemma(word)
		switch {
		case result.ProblemAdj == "" && m.reg.IsNegativeAdjective(lemma):
			result.ProblemAdj = lemma
		case result.ProblemNoun == "" && m.reg.IsProblemNoun(lemma):
			result.ProblemNoun = lemma
		case result.ProblemNoun == "" && lemma == aspectLemma:
			result.ProblemNoun = lemma
		}
	}
	if result.ProblemNoun == "" {
		result.ProblemNoun = aspectLemma
	}

	if match := causeNounRe.FindStringSubmatch(span); match != nil {
		result.CauseNoun = m.lem.Lemma(match[1])
		result.CauseType = "cause"
	} else if match := effectNounRe.FindStringSubmatch(span); match != nil {
		result.CauseNoun = m.lem.Lemma(match[1])
		result.CauseType = "effect"
	}

	if result.ProblemAdj == "" && len(problemWords) > 0 {
		result.ProblemAdj = problemWords[0]
	}
	return result
}

// outcomeKey applies the sub-rules that pick the phrasing template.
func (m *Matcher) outcomeKey(cat *taxonomy.Category, span, aspectLemma string) string {
	switch {
	case causalCueRe.MatchString(span):
		if key, ok := causeKeyByCategory[cat.Name]; ok {
			return key
		}
	case effectCueRe.MatchString(span):
		if cat.Name == "performance_efficiency" {
			return "problem_effect"
		}
	case strings.Contains(span, "for what you get") || strings.Contains(span, "for the price"):
		if cat.Name == "cost_value" {
			return "cost_value_comparison"
		}
	case strings.Contains(span, "lack of value") || strings.Contains(span, "poor value"):
		if cat.Name == "cost_value" {
			return "lack_of_value"
		}
	case strings.Contains(span, "lack of variety"):
		if cat.Name == "product_content_quality" {
			return "lack_of_variety"
		}
	case m.hasNegativeAdjective(span):
		if m.hasProblemNoun(span) {
			return "simple_adj_noun"
		}
		if strings.Contains(span, aspectLemma) {
			return "simple_noun_adj"
		}
	}
	return "general"
}

func (m *Matcher) hasNegativeAdjective(span string) bool {
	for _, word := range wordRe.FindAllString(span, -1) {
		if m.reg.IsNegativeAdjective(m.lem.Lemma(word)) {
			return true
		}
	}
	return false
}

func (m *Matcher) hasProblemNoun(span string) bool {
	for _, word := range wordRe.FindAllString(span, -1) {
		if m.reg.IsProblemNoun(m.lem.Lemma(word)) {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
