// Package dataset loads the tabular input the pipeline consumes: one review
// per row, a designated text column, and an optional numeric score column.
package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aspectlens/aspectlens/internal/models"
)

// Dataset is an in-memory table with a header row.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// LoadCSV reads path into memory. Rows with a deviating field count are
// accepted; missing cells read as empty strings.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	return &Dataset{Headers: all[0], Rows: all[1:]}, nil
}

// ColumnIndex resolves a header name case-insensitively.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, h := range d.Headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

// Reviews materializes the review slice from the named columns. The text
// column is required. The score column is optional: an empty name, a
// missing column, or an unparseable cell all leave RawScore nil. Per-row
// score problems are recovered locally, never propagated.
func (d *Dataset) Reviews(textCol, scoreCol string) ([]models.Review, error) {
	textIdx, ok := d.ColumnIndex(textCol)
	if !ok {
		return nil, fmt.Errorf("text column %q not found in %v", textCol, d.Headers)
	}

	scoreIdx := -1
	if scoreCol != "" {
		if idx, ok := d.ColumnIndex(scoreCol); ok {
			scoreIdx = idx
		} else {
			slog.Warn("[Dataset] Score column not found, treating scores as absent",
				slog.String("column", scoreCol))
		}
	}

	reviews := make([]models.Review, 0, len(d.Rows))
	for i, row := range d.Rows {
		rev := models.Review{Index: i, Text: cell(row, textIdx)}
		if scoreIdx >= 0 {
			if v, err := strconv.ParseFloat(strings.TrimSpace(cell(row, scoreIdx)), 64); err == nil {
				rev.RawScore = &v
			}
		}
		reviews = append(reviews, rev)
	}
	return reviews, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
