// Package pipeline runs the full pass over a dataset: sentence
// segmentation, chunked sentiment classification, aspect extraction, and
// review-level aggregation into the two output tables.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aspectlens/aspectlens/config"
	"github.com/aspectlens/aspectlens/internal/aspects"
	"github.com/aspectlens/aspectlens/internal/classifier"
	"github.com/aspectlens/aspectlens/internal/models"
	"github.com/aspectlens/aspectlens/internal/segmenter"
	"github.com/aspectlens/aspectlens/internal/textproc"
)

// Blend weights and numeric cutoffs for the review-level score. These are
// part of the scoring contract, not tunables.
const (
	modelWeight = 0.6
	npsWeight   = 0.4

	npsPromoterMin  = 9
	npsDetractorMax = 6
)

// Pipeline aggregates per-sentence classifier output into review-level
// results. One Pipeline can run many datasets; it holds no per-run state.
type Pipeline struct {
	classifier classifier.Classifier
	batchSize  int
}

func New(c classifier.Classifier, batchSize int) *Pipeline {
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	return &Pipeline{classifier: c, batchSize: batchSize}
}

// sentenceRef ties a classified sentence back to its review.
type sentenceRef struct {
	review  int
	context string
}

// Run executes the whole pass synchronously. The summary table always gets
// exactly one row per review in input order; the detail table gets one row
// per (sentence, aspect) pair. A classifier batch failure aborts the run,
// since partial results would corrupt sentence indices.
func (p *Pipeline) Run(ctx context.Context, reviews []models.Review) (*models.AnalysisRun, error) {
	started := time.Now()

	var texts []string
	var refs []sentenceRef
	for i, rev := range reviews {
		plain := textproc.PlainText(rev.Text)
		for _, sentence := range segmenter.Sentences(plain) {
			texts = append(texts, textproc.Truncate(sentence, textproc.MaxSentenceLen))
			refs = append(refs, sentenceRef{review: i, context: sentence})
		}
	}
	slog.Info("[Pipeline] Segmented reviews",
		slog.Int("reviews", len(reviews)),
		slog.Int("sentences", len(texts)))

	preds, err := p.classifyAll(ctx, texts, started)
	if err != nil {
		return nil, err
	}

	observations := make(map[int][]models.SentimentObservation, len(reviews))
	var records []models.AspectRecord

	for i, ref := range refs {
		label := classifier.MapSentiment(preds[i].Label)
		obs := models.SentimentObservation{Label: label, Score: preds[i].Score}

		found := aspects.Extract(ref.context)
		if len(found) == 0 {
			observations[ref.review] = append(observations[ref.review], obs)
			continue
		}
		for _, aspect := range found {
			records = append(records, models.AspectRecord{
				ReviewNo:   ref.review + 1,
				ReviewText: reviews[ref.review].Text,
				Aspect:     aspect,
				Sentiment:  label,
				Score:      preds[i].Score,
				Context:    ref.context,
			})
			observations[ref.review] = append(observations[ref.review], obs)
		}
	}

	summaries := make([]models.ReviewSummary, 0, len(reviews))
	for i, rev := range reviews {
		blended := blendedScore(observations[i], rev.RawScore)
		summaries = append(summaries, models.ReviewSummary{
			ReviewNo:       i + 1,
			ReviewText:     rev.Text,
			NPSScore:       rev.RawScore,
			BlendedScore:   blended,
			FinalSentiment: models.NumericalToSentiment(blended),
		})
	}

	slog.Info("[Pipeline] Run complete",
		slog.Int("aspect_records", len(records)),
		slog.Int("summaries", len(summaries)),
		slog.Duration("elapsed", time.Since(started)))

	return &models.AnalysisRun{
		ID:        uuid.NewString(),
		Records:   records,
		Summaries: summaries,
		Sentences: len(texts),
		Started:   started,
		Finished:  time.Now(),
	}, nil
}

// classifyAll feeds fixed-size chunks to the classifier, preserving order
// so result index i corresponds to sentence i.
func (p *Pipeline) classifyAll(ctx context.Context, texts []string, started time.Time) ([]classifier.Prediction, error) {
	preds := make([]classifier.Prediction, 0, len(texts))
	for start := 0; start < len(texts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := p.classifier.ClassifyBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("classify sentences %d-%d: %w", start, end, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("classify sentences %d-%d: got %d predictions", start, end, len(batch))
		}
		preds = append(preds, batch...)

		slog.Info("[Pipeline] Classified batch",
			slog.Int("done", end),
			slog.Int("total", len(texts)),
			slog.Duration("elapsed", time.Since(started)))
	}
	return preds, nil
}

// blendedScore combines the model-derived score with the external
// satisfaction score: 0.6*model + 0.4*nps_val. Reviews with no sentences
// score 0 on the model side; a nil external score contributes 0.
func blendedScore(obs []models.SentimentObservation, rawScore *float64) float64 {
	var model float64
	if len(obs) > 0 {
		var sum float64
		for _, o := range obs {
			sum += models.SentimentToNumerical(o.Label) * o.Score
		}
		model = sum / float64(len(obs))
	}

	var npsVal float64
	if rawScore != nil {
		switch {
		case *rawScore >= npsPromoterMin:
			npsVal = 1
		case *rawScore <= npsDetractorMax:
			npsVal = -1
		}
	}

	return modelWeight*model + npsWeight*npsVal
}
