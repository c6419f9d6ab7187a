package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aspectlens/aspectlens/config"
	"github.com/aspectlens/aspectlens/internal/classifier"
	"github.com/aspectlens/aspectlens/internal/dataset"
	"github.com/aspectlens/aspectlens/internal/export"
	"github.com/aspectlens/aspectlens/internal/logging"
	"github.com/aspectlens/aspectlens/internal/models"
	"github.com/aspectlens/aspectlens/internal/patterns"
	"github.com/aspectlens/aspectlens/internal/pipeline"
	"github.com/aspectlens/aspectlens/internal/report"
	"github.com/aspectlens/aspectlens/internal/taxonomy"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	var (
		input    = flag.String("input", "", "path to the reviews CSV")
		textCol  = flag.String("text-col", "review_text", "name of the review text column")
		scoreCol = flag.String("score-col", "nps_score", "name of the 0-10 satisfaction score column")
		outDir   = flag.String("out", ".", "directory for output files")
		modelDir = flag.String("model-dir", config.ModelDir(), "directory for downloaded model files")
		useVader = flag.Bool("vader", false, "use the lexicon classifier instead of the transformer")
		topN     = flag.Int("top", config.TopAspects(), "number of negative aspects to analyze")
		batch    = flag.Int("batch", config.BatchSize(), "classifier batch size")
	)
	flag.Parse()

	if *input == "" {
		slog.Error("[Main] -input is required")
		os.Exit(1)
	}

	ds, err := dataset.LoadCSV(*input)
	if err != nil {
		slog.Error("[Main] Failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}
	reviews, err := ds.Reviews(*textCol, *scoreCol)
	if err != nil {
		slog.Error("[Main] Failed to read reviews", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cls := newClassifier(*useVader, *modelDir)
	defer cls.Close()

	reg, err := taxonomy.Default()
	if err != nil {
		slog.Error("[Main] Failed to load taxonomy", slog.String("error", err.Error()))
		os.Exit(1)
	}

	run, err := pipeline.New(cls, *batch).Run(context.Background(), reviews)
	if err != nil {
		slog.Error("[Main] Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	matcher, err := patterns.NewMatcher(reg)
	if err != nil {
		slog.Error("[Main] Failed to init matcher", slog.String("error", err.Error()))
		os.Exit(1)
	}
	synth := report.NewSynthesizer(reg, nil)
	analyses := report.NewBuilder(matcher, synth, *topN).Build(run.Records)
	breakdown := report.Breakdown(run.Records)

	if err := writeOutputs(*outDir, run, analyses, breakdown); err != nil {
		slog.Error("[Main] Failed to write outputs", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Done",
		slog.String("run_id", run.ID),
		slog.Int("reviews", len(run.Summaries)),
		slog.Int("negative_aspects", len(analyses)))
}

// closer is the optional teardown the transformer classifier needs.
type closer interface {
	classifier.Classifier
	Close() error
}

// vaderClassifier adapts the lexicon classifier to the closer interface.
type vaderClassifier struct{ *classifier.Vader }

func (vaderClassifier) Close() error { return nil }

// newClassifier picks the transformer session when available and falls
// back to the lexicon classifier when it cannot be initialized.
func newClassifier(useVader bool, modelDir string) closer {
	if !useVader {
		roberta, err := classifier.NewRoberta(modelDir)
		if err == nil {
			return roberta
		}
		slog.Warn("[Main] Transformer unavailable, falling back to lexicon classifier",
			slog.String("error", err.Error()))
	}
	return vaderClassifier{classifier.NewVader()}
}

func writeOutputs(outDir string, run *models.AnalysisRun, analyses []models.AspectAnalysis, breakdown []models.AspectBreakdown) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := export.WriteRecordsCSV(filepath.Join(outDir, "aspect_records.csv"), run.Records); err != nil {
		return err
	}
	if err := export.WriteSummariesCSV(filepath.Join(outDir, "review_summaries.csv"), run.Summaries); err != nil {
		return err
	}
	return export.WriteReport(filepath.Join(outDir, "report.md"), run, analyses, breakdown)
}
