package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

const sentimentModelName = "cardiffnlp/twitter-roberta-base-sentiment"

// Roberta classifies sentences with the cardiffnlp RoBERTa sentiment model
// running on an ONNX runtime session. Whether the runtime picks accelerated
// hardware is invisible to callers.
type Roberta struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewRoberta opens an ORT session over the sentiment model, downloading the
// model into modelDir on first use. Call Close when done.
func NewRoberta(modelDir string) (*Roberta, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create model dir: %w", err)
	}

	modelPath := filepath.Join(modelDir, filepath.FromSlash(sentimentModelName))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[Roberta] Model not found, downloading...",
			slog.String("model", sentimentModelName))
		downloaded, err := hugot.DownloadModel(sentimentModelName, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("download sentiment model: %w", err)
		}
		modelPath = downloaded
		slog.Info("[Roberta] Model downloaded", slog.String("path", modelPath))
	} else {
		slog.Info("[Roberta] Using existing model", slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("init hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("init sentiment pipeline: %w", err)
	}

	return &Roberta{session: session, pipeline: pipeline}, nil
}

// ClassifyBatch scores the whole batch in one pipeline run. The result
// order matches the input order.
func (r *Roberta) ClassifyBatch(ctx context.Context, texts []string) ([]Prediction, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := r.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("sentiment batch: %w", err)
	}
	if len(output.ClassificationOutputs) != len(texts) {
		return nil, fmt.Errorf("sentiment batch: got %d results for %d inputs",
			len(output.ClassificationOutputs), len(texts))
	}

	preds := make([]Prediction, len(texts))
	for i, scores := range output.ClassificationOutputs {
		if len(scores) == 0 {
			preds[i] = Prediction{Label: "LABEL_1", Score: 0}
			continue
		}
		best := scores[0]
		for _, s := range scores[1:] {
			if s.Score > best.Score {
				best = s
			}
		}
		preds[i] = Prediction{Label: best.Label, Score: float64(best.Score)}
	}
	return preds, nil
}

// Close destroys the underlying ORT session.
func (r *Roberta) Close() error {
	return r.session.Destroy()
}
