// Package textproc normalizes raw review text before it reaches the
// sentiment classifier: markdown is flattened, links are stripped, and
// overlong sentences are truncated to the classifier's input limit.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/russross/blackfriday/v2"
)

// MaxSentenceLen is the hard cap on classifier input. Longer sentences are
// silently cut, never rejected.
const MaxSentenceLen = 512

var (
	mdLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern    = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
)

// RemoveLinks drops markdown links (keeping their anchor text) and bare URLs.
func RemoveLinks(input string) string {
	input = mdLinkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// PlainText renders markdown to text, collapses whitespace, and strips links.
// Reviews pasted from web sources routinely carry markdown artifacts that
// skew classifier confidence.
func PlainText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	stripped := tagPattern.ReplaceAllString(string(output), " ")
	plain := strings.Join(strings.Fields(stripped), " ")

	return RemoveLinks(plain)
}

// TitleWords upper-cases the first letter of every space-separated word.
func TitleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
