// Package classifier defines the sentiment classification boundary and the
// two backends that satisfy it: an ONNX RoBERTa pipeline and a VADER
// fallback. Both emit the same raw label vocabulary (LABEL_0/1/2) so the
// canonical mapping applies uniformly.
package classifier

import (
	"context"
	"strings"

	"github.com/aspectlens/aspectlens/internal/models"
)

// Prediction is one raw classifier verdict: the backend's label plus a
// confidence score in [0,1].
type Prediction struct {
	Label string
	Score float64
}

// Classifier scores a batch of short texts. Implementations are stateless
// per call; result index i corresponds to input index i. A failed batch is
// fatal for the run; there is no retry policy at this boundary.
type Classifier interface {
	ClassifyBatch(ctx context.Context, texts []string) ([]Prediction, error)
}

// MapSentiment maps a raw 3-class label onto the canonical vocabulary.
// Matching is case-insensitive by substring; anything unrecognized is
// Neutral.
func MapSentiment(raw string) string {
	label := strings.ToUpper(raw)
	switch {
	case strings.Contains(label, "LABEL_0"):
		return models.SentimentNegative
	case strings.Contains(label, "LABEL_1"):
		return models.SentimentNeutral
	case strings.Contains(label, "LABEL_2"):
		return models.SentimentPositive
	default:
		return models.SentimentNeutral
	}
}
