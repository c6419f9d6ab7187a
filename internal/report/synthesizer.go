package report

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/aspectlens/aspectlens/internal/models"
	"github.com/aspectlens/aspectlens/internal/patterns"
	"github.com/aspectlens/aspectlens/internal/taxonomy"
	"github.com/aspectlens/aspectlens/internal/textproc"
)

var leadingOrdinalRe = regexp.MustCompile(`^\d+\.`)

// Synthesizer renders the per-aspect analysis/recommendation text from a
// matcher Outcome. Word choices are randomized; the structure (section
// headers, line counts, template family) is fixed by the dominant pattern.
type Synthesizer struct {
	reg *taxonomy.Registry
	rng *rand.Rand
}

// NewSynthesizer builds a Synthesizer. A nil rng gets a time-seeded source;
// tests pass a fixed seed for reproducible output.
func NewSynthesizer(reg *taxonomy.Registry, rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{reg: reg, rng: rng}
}

// Generate renders the full report block for one aspect. Every input shape
// produces well-formed output; the fallback ladder guarantees analysis and
// recommendation lines even for an empty context pool.
func (s *Synthesizer) Generate(aspect string, contexts []string, outcome patterns.Outcome) string {
	displayName := textproc.TitleWords(strings.ReplaceAll(aspect, "_", " "))

	analysis := s.analysisLines(displayName, len(contexts), outcome)
	recs := numberLines(s.recommendationLines(displayName, outcome))

	return fmt.Sprintf("\n**Analysis Overview:**\n%s\n\n**Actionable Recommendations:**\n%s\n",
		strings.Join(analysis, "\n"), strings.Join(recs, "\n"))
}

func (s *Synthesizer) analysisLines(displayName string, mentions int, outcome patterns.Outcome) []string {
	if len(outcome.Ranked) > 0 {
		return s.patternAnalysis(displayName, mentions, outcome)
	}

	if len(outcome.ProblemWords) > 0 {
		subject := "the overall experience"
		if len(outcome.SubjectNouns) > 0 {
			subject = outcome.SubjectNouns[0]
		}
		return []string{
			fmt.Sprintf("The primary concern for **%s** is its **%s** aspect, often related to **%s**.",
				displayName, outcome.ProblemWords[0], subject),
			"This suggests a need for deeper investigation into the specific instances mentioned by users.",
			fmt.Sprintf("A thorough review of negative feedback for %s is highly recommended.", displayName),
		}
	}

	return []string{
		fmt.Sprintf("Negative feedback for **%s** is diverse, without clear dominant problem phrases or keywords.", displayName),
		"A thorough manual review of comments is recommended to uncover the core problems.",
		"Consider implementing more structured feedback collection for this aspect.",
	}
}

func (s *Synthesizer) patternAnalysis(displayName string, mentions int, outcome patterns.Outcome) []string {
	primary := outcome.Ranked[0].Result
	cat, _ := s.reg.Category(primary.Category)

	lines := []string{fill(s.analysisTemplate(cat, primary.OutcomeKey), displayName, primary, "", "", "")}
	used := map[string]bool{primary.OutcomeKey: true}

	added := 0
	for _, r := range outcome.Ranked[1:] {
		if added >= 2 {
			break
		}
		res := r.Result
		if used[res.OutcomeKey] || res.ProblemAdj == "" || res.ProblemNoun == "" || res.Category != primary.Category {
			continue
		}

		text := fill(s.analysisTemplate(cat, res.OutcomeKey), displayName, res, "", "", "")
		text = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(text, displayName+"'s ", ""), displayName+" ", ""))

		// De-duplication is against the primary line only.
		if text == lines[0] || strings.Contains(lines[0], text) {
			continue
		}
		prefix := "Furthermore, "
		if added == 1 {
			prefix = "Additionally, "
		}
		lines = append(lines, prefix+"users also frequently highlight: "+strings.ToLower(text))
		used[res.OutcomeKey] = true
		added++
	}

	closers := []string{
		fmt.Sprintf("Overall, this indicates a significant area of concern for **%s**, with %d negative mentions pointing to these issues.", displayName, mentions),
		fmt.Sprintf("Addressing these identified challenges is crucial for improving overall user satisfaction and perception of **%s**.", displayName),
		fmt.Sprintf("Continued monitoring of incoming feedback will confirm whether corrective actions for **%s** are taking effect.", displayName),
	}
	for i := 0; len(lines) < 4 && i < len(closers); i++ {
		lines = append(lines, closers[i])
	}
	return lines
}

func (s *Synthesizer) analysisTemplate(cat *taxonomy.Category, key string) string {
	if tmpl, ok := cat.AnalysisThemes[key]; ok {
		return tmpl
	}
	return cat.AnalysisThemes["general"]
}

func (s *Synthesizer) recommendationLines(displayName string, outcome patterns.Outcome) []string {
	if len(outcome.Ranked) == 0 {
		return []string{
			"1. **Conduct a focused root cause analysis** on all negative feedback for this aspect to pinpoint critical areas for improvement.",
			"2. **Implement a structured feedback mechanism** to gather more specific and actionable insights from users.",
			"3. **Prioritize corrective actions** based on the frequency and severity of reported problems to allocate resources effectively.",
			"4. **Engage with key users** who provided negative feedback to validate identified problems and potential solutions.",
			fmt.Sprintf("5. **%s** an internal workshop with relevant teams to brainstorm solutions for **%s**'s negative perception.",
				s.titleVerb(), displayName),
		}
	}

	primary := outcome.Ranked[0].Result
	cat, _ := s.reg.Category(primary.Category)

	var relevant, general []taxonomy.Recommendation
	for _, rec := range cat.Recommendations {
		switch rec.Key {
		case primary.OutcomeKey:
			relevant = append(relevant, rec)
		case "":
			general = append(general, rec)
		}
	}

	var recs []string
	used := make(map[string]bool)

	if len(relevant) > 0 {
		rec := relevant[s.rng.Intn(len(relevant))]
		recs = append(recs, s.fillRec(rec, displayName, primary))
		used[rec.Template] = true
	} else {
		adj := primary.ProblemAdj
		if adj == "" {
			adj = patterns.FallbackAdjective
		}
		line := fmt.Sprintf("1. **%s** the core issues contributing to the **%s** sentiment around **%s**, focusing on **%s**.",
			s.titleVerb(), adj, displayName, s.focusNoun())
		recs = append(recs, line)
		used[line] = true
	}

	available := make([]taxonomy.Recommendation, 0, len(general))
	for _, rec := range general {
		if !used[rec.Template] {
			available = append(available, rec)
		}
	}
	for len(recs) < 4 && len(available) > 0 {
		i := s.rng.Intn(len(available))
		rec := available[i]
		available = append(available[:i], available[i+1:]...)
		if used[rec.Template] {
			continue
		}
		recs = append(recs, s.fillRec(rec, displayName, primary))
		used[rec.Template] = true
	}
	return recs
}

// fillRec renders a recommendation template with freshly randomized word
// choices for every slot.
func (s *Synthesizer) fillRec(rec taxonomy.Recommendation, displayName string, res models.MatchResult) string {
	action := ""
	if len(rec.Actions) > 0 {
		action = rec.Actions[s.rng.Intn(len(rec.Actions))]
	}
	return fill(rec.Template, displayName, res, s.titleVerb(), s.focusNoun(), action)
}

func (s *Synthesizer) titleVerb() string {
	verbs := s.reg.Vocab.ActionVerbs
	return textproc.TitleWords(verbs[s.rng.Intn(len(verbs))])
}

func (s *Synthesizer) focusNoun() string {
	nouns := s.reg.Vocab.ProblemNouns
	return nouns[s.rng.Intn(len(nouns))]
}

// fill substitutes every template placeholder, applying the fallback
// fillers for slots the match left empty.
func fill(tmpl, displayName string, res models.MatchResult, fixVerb, areaOfFocus, randomAction string) string {
	adj := res.ProblemAdj
	if adj == "" {
		adj = patterns.FallbackAdjective
	}
	noun := res.ProblemNoun
	if noun == "" {
		noun = patterns.FallbackNoun
	}
	cause := res.CauseNoun
	if cause == "" {
		cause = patterns.FallbackCause
	}
	verb := "stems from"
	if res.CauseType == "effect" {
		verb = "leads to"
	}

	return strings.NewReplacer(
		"{aspect_name}", displayName,
		"{problem_adj}", adj,
		"{problem_noun}", noun,
		"{cause_or_effect_noun}", cause,
		"{cause_or_effect_verb}", verb,
		"{fix_verb}", fixVerb,
		"{area_of_focus}", areaOfFocus,
		"{random_action_1}", randomAction,
	).Replace(tmpl)
}

// numberLines guarantees every recommendation starts with "N. "; lines
// already carrying an ordinal keep it.
func numberLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if leadingOrdinalRe.MatchString(trimmed) {
			out[i] = trimmed
			continue
		}
		out[i] = fmt.Sprintf("%d. %s", i+1, strings.TrimLeft(trimmed, "0123456789. "))
	}
	return out
}
