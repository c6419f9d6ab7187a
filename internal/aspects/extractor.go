// Package aspects derives candidate aspect phrases from single sentences
// using part-of-speech tags.
package aspects

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"

	"github.com/aspectlens/aspectlens/internal/stopwords"
	"github.com/aspectlens/aspectlens/internal/textproc"
)

// MaxPerSentence caps how many distinct aspects one sentence contributes.
const MaxPerSentence = 2

// Extract returns 0-2 aspect phrases for one sentence. Consecutive
// noun-like or adjective-like tokens that are alphabetic and not stop words
// accumulate into a phrase; any token breaking the run flushes it. Phrases
// are title-cased, filtered to multi-word or >2 characters, ranked by
// in-sentence frequency (stable first-seen order on the usual all-ones
// counts), and capped at two. An empty result is common and valid.
func Extract(sentence string) []string {
	doc, err := prose.NewDocument(strings.ToLower(sentence),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil
	}

	var candidates []string
	var phrase []string
	flush := func() {
		if len(phrase) == 0 {
			return
		}
		candidates = append(candidates, textproc.TitleWords(strings.Join(phrase, " ")))
		phrase = phrase[:0]
	}

	for _, tok := range doc.Tokens() {
		nounOrAdj := strings.HasPrefix(tok.Tag, "N") || strings.HasPrefix(tok.Tag, "J")
		if nounOrAdj && isAlpha(tok.Text) && !stopwords.IsStopword(tok.Text) {
			phrase = append(phrase, tok.Text)
			continue
		}
		flush()
	}
	flush()

	return rank(candidates)
}

type candidate struct {
	text  string
	count int
	first int
}

func rank(candidates []string) []string {
	byText := make(map[string]*candidate)
	var order []*candidate
	for i, text := range candidates {
		// Single-letter noise: keep multi-word phrases or words longer
		// than two characters.
		if len(strings.Fields(text)) <= 1 && len(text) <= 2 {
			continue
		}
		if c, ok := byText[text]; ok {
			c.count++
			continue
		}
		c := &candidate{text: text, count: 1, first: i}
		byText[text] = c
		order = append(order, c)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	n := len(order)
	if n > MaxPerSentence {
		n = MaxPerSentence
	}
	out := make([]string, 0, n)
	for _, c := range order[:n] {
		out = append(out, c.text)
	}
	return out
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
