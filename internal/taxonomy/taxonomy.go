// Package taxonomy holds the static problem taxonomy: the categories,
// match patterns, and phrase templates that drive the analysis reports.
// The data is embedded and loaded once into an immutable registry.
package taxonomy

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var rawTaxonomy []byte

// Recommendation is one recommendation template. Key selects the outcome
// it applies to; an empty Key marks the category's general pool. Actions
// are the filler phrases substituted for {random_action_1}.
type Recommendation struct {
	Key      string   `yaml:"key"`
	Template string   `yaml:"template"`
	Actions  []string `yaml:"actions"`
}

// Category is one problem category. Patterns are regular expressions run
// against the lower-cased concatenation of an aspect's negative contexts.
type Category struct {
	Name            string            `yaml:"name"`
	Keywords        []string          `yaml:"keywords"`
	Patterns        []string          `yaml:"patterns"`
	AnalysisThemes  map[string]string `yaml:"analysis_themes"`
	Recommendations []Recommendation  `yaml:"recommendations"`

	compiled []*regexp.Regexp
}

// Compiled returns the category's compiled patterns in declaration order.
func (c *Category) Compiled() []*regexp.Regexp {
	return c.compiled
}

// Vocabulary carries the global word lists shared by all categories.
type Vocabulary struct {
	NegativeAdjectives []string `yaml:"negative_adjectives"`
	ProblemNouns       []string `yaml:"problem_nouns"`
	ActionVerbs        []string `yaml:"action_verbs"`
}

// Registry is the loaded taxonomy. It is read-only after Load.
type Registry struct {
	Categories []*Category
	Vocab      Vocabulary

	byName       map[string]*Category
	negAdjs      map[string]struct{}
	problemNouns map[string]struct{}
}

type document struct {
	Vocabulary Vocabulary  `yaml:"vocabulary"`
	Categories []*Category `yaml:"categories"`
}

// Load parses and compiles the embedded taxonomy.
func Load() (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(rawTaxonomy, &doc); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy has no categories")
	}

	reg := &Registry{
		Categories:   doc.Categories,
		Vocab:        doc.Vocabulary,
		byName:       make(map[string]*Category, len(doc.Categories)),
		negAdjs:      toSet(doc.Vocabulary.NegativeAdjectives),
		problemNouns: toSet(doc.Vocabulary.ProblemNouns),
	}

	for _, cat := range doc.Categories {
		if _, dup := reg.byName[cat.Name]; dup {
			return nil, fmt.Errorf("duplicate taxonomy category %q", cat.Name)
		}
		if _, ok := cat.AnalysisThemes["general"]; !ok {
			return nil, fmt.Errorf("category %q has no general analysis theme", cat.Name)
		}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("category %q pattern %q: %w", cat.Name, p, err)
			}
			cat.compiled = append(cat.compiled, re)
		}
		reg.byName[cat.Name] = cat
	}
	return reg, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the process-wide registry, loading it on first use.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Load()
	})
	return defaultReg, defaultErr
}

// Category looks a category up by name.
func (r *Registry) Category(name string) (*Category, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// IsNegativeAdjective reports membership in the global adjective list.
func (r *Registry) IsNegativeAdjective(lemma string) bool {
	_, ok := r.negAdjs[lemma]
	return ok
}

// IsProblemNoun reports membership in the global problem-noun list.
func (r *Registry) IsProblemNoun(lemma string) bool {
	_, ok := r.problemNouns[lemma]
	return ok
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
