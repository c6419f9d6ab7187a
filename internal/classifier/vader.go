package classifier

import (
	"context"
	"math"

	"github.com/jonreiter/govader"
)

// Compound-score cutoffs for collapsing VADER output onto three classes.
const (
	vaderPositive = 0.20
	vaderNegative = -0.20
)

// Vader is a lexicon-based fallback backend for environments without an
// ONNX runtime. It emits the same raw LABEL_0/1/2 vocabulary as the
// transformer backend.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) ClassifyBatch(ctx context.Context, texts []string) ([]Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	preds := make([]Prediction, len(texts))
	for i, text := range texts {
		compound := v.analyzer.PolarityScores(text).Compound

		label := "LABEL_1"
		if compound >= vaderPositive {
			label = "LABEL_2"
		} else if compound <= vaderNegative {
			label = "LABEL_0"
		}

		preds[i] = Prediction{Label: label, Score: math.Min(math.Abs(compound), 1)}
	}
	return preds, nil
}
