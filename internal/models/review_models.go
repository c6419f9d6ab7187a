package models

// Canonical 3-way sentiment labels. Every observation in the pipeline
// carries one of these; raw classifier labels are mapped on the way in.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Review is one input row. RawScore is the external satisfaction score
// (NPS-style) and stays nil when the column is absent or unparseable.
type Review struct {
	Index    int
	Text     string
	RawScore *float64
}

// SentimentObservation is the classifier verdict for a single sentence.
type SentimentObservation struct {
	Label string
	Score float64
}

// SentimentToNumerical maps a canonical label onto the -1/0/+1 axis used
// for review-level blending. Unknown labels count as neutral.
func SentimentToNumerical(label string) float64 {
	switch label {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	default:
		return 0
	}
}

// NumericalToSentiment maps a blended score back to a label. The ±0.1
// dead zone around zero is part of the scoring contract.
func NumericalToSentiment(score float64) string {
	switch {
	case score > 0.1:
		return SentimentPositive
	case score < -0.1:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
