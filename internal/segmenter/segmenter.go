// Package segmenter splits review text into sentences for classification
// and aspect extraction.
package segmenter

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// Sentences splits raw review text into trimmed sentences. Segmentation
// failures are recovered locally: the whole trimmed value is returned as a
// single sentence, so a malformed review never aborts a run. Empty input
// yields no sentences.
func Sentences(raw string) []string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return []string{text}
	}

	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{text}
	}
	return out
}
