// Package export writes the run's output artifacts: the two CSV tables
// and the markdown report.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aspectlens/aspectlens/internal/models"
)

var recordsHeader = []string{
	"Review No.", "Review Text", "Aspect",
	"Aspect_Sentiment", "Aspect_Sentiment_Score", "Aspect_Context",
}

var summariesHeader = []string{
	"Review No.", "Review Text", "NPS Score", "Blended_Score", "Final_Sentiment",
}

// WriteRecordsCSV writes the aspect detail table.
func WriteRecordsCSV(path string, records []models.AspectRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ReviewNo),
			r.ReviewText,
			r.Aspect,
			r.Sentiment,
			strconv.FormatFloat(r.Score, 'f', 4, 64),
			r.Context,
		})
	}
	return writeCSV(path, recordsHeader, rows)
}

// WriteSummariesCSV writes the review summary table. A missing external
// score becomes an empty cell.
func WriteSummariesCSV(path string, summaries []models.ReviewSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		nps := ""
		if s.NPSScore != nil {
			nps = strconv.FormatFloat(*s.NPSScore, 'f', -1, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(s.ReviewNo),
			s.ReviewText,
			nps,
			strconv.FormatFloat(s.BlendedScore, 'f', 4, 64),
			s.FinalSentiment,
		})
	}
	return writeCSV(path, summariesHeader, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteReport renders the markdown report: the negative-aspect analyses
// followed by the full sentiment breakdown table.
func WriteReport(path string, run *models.AnalysisRun, analyses []models.AspectAnalysis, breakdown []models.AspectBreakdown) error {
	var b strings.Builder

	b.WriteString("# Aspect Sentiment Report\n\n")
	fmt.Fprintf(&b, "Run `%s`: %d reviews, %d sentences, %d aspect mentions.\n",
		run.ID, len(run.Summaries), run.Sentences, len(run.Records))

	b.WriteString("\n## Top Negative Aspects\n")
	if len(analyses) == 0 {
		b.WriteString("\nNo negative aspect mentions were found.\n")
	}
	for _, a := range analyses {
		fmt.Fprintf(&b, "\n### %s (%d negative mentions)\n", a.DisplayName, a.NegativeCount)
		b.WriteString(a.Text)
		if len(a.SampleContexts) > 0 {
			b.WriteString("\nExample mentions:\n")
			for _, c := range a.SampleContexts {
				fmt.Fprintf(&b, "> %s\n", c)
			}
		}
	}

	b.WriteString("\n## Sentiment Breakdown by Aspect\n\n")
	b.WriteString("| Aspect | Positive | Neutral | Negative | Total | Negative % |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, row := range breakdown {
		var negShare float64
		if row.Total > 0 {
			negShare = 100 * float64(row.Negative) / float64(row.Total)
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %.1f%% |\n",
			row.Aspect, row.Positive, row.Neutral, row.Negative, row.Total, negShare)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
