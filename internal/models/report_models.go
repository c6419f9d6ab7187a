package models

import "time"

// AspectRecord is one row of the detail table: a single aspect surfaced by
// a single sentence, with that sentence's sentiment attached.
type AspectRecord struct {
	ReviewNo   int     `json:"review_no"`
	ReviewText string  `json:"review_text"`
	Aspect     string  `json:"aspect"`
	Sentiment  string  `json:"aspect_sentiment"`
	Score      float64 `json:"aspect_sentiment_score"`
	Context    string  `json:"aspect_context"`
}

// ReviewSummary is one row of the summary table. Exactly one is produced
// per input review, in input order, even when no aspects were found.
type ReviewSummary struct {
	ReviewNo       int      `json:"review_no"`
	ReviewText     string   `json:"review_text"`
	NPSScore       *float64 `json:"nps_score"`
	BlendedScore   float64  `json:"blended_score"`
	FinalSentiment string   `json:"final_sentiment"`
}

// AnalysisRun bundles the outputs of one full pipeline pass.
type AnalysisRun struct {
	ID        string          `json:"id"`
	Records   []AspectRecord  `json:"records"`
	Summaries []ReviewSummary `json:"summaries"`
	Sentences int             `json:"sentences"`
	Started   time.Time       `json:"started"`
	Finished  time.Time       `json:"finished"`
}

// MatchResult describes one taxonomy pattern match over an aspect's
// negative contexts. Empty strings stand for missing slots.
type MatchResult struct {
	Category    string
	OutcomeKey  string
	ProblemAdj  string
	ProblemNoun string
	CauseNoun   string
	CauseType   string // "cause" or "effect"
}

// AspectBreakdown aggregates per-aspect sentiment counts for the report's
// breakdown table. Aspects are grouped case-insensitively.
type AspectBreakdown struct {
	Aspect   string
	Positive int
	Neutral  int
	Negative int
	Total    int
}

// AspectAnalysis is the deep-dive output for one problematic aspect.
type AspectAnalysis struct {
	Aspect         string
	DisplayName    string
	NegativeCount  int
	SampleContexts []string
	Text           string
}
