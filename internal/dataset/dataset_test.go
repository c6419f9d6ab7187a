package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Run("reads header and rows", func(t *testing.T) {
		path := writeCSV(t, "review_text,nps_score\ngreat product,9\nbad product,2\n")
		ds, err := LoadCSV(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"review_text", "nps_score"}, ds.Headers)
		assert.Len(t, ds.Rows, 2)
	})

	t.Run("ragged rows are accepted", func(t *testing.T) {
		path := writeCSV(t, "review_text,nps_score\nonly text\n")
		ds, err := LoadCSV(path)
		require.NoError(t, err)
		assert.Len(t, ds.Rows, 1)
	})

	t.Run("empty file errors", func(t *testing.T) {
		path := writeCSV(t, "")
		_, err := LoadCSV(path)
		assert.Error(t, err)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

func TestReviews(t *testing.T) {
	path := writeCSV(t, "Review_Text,NPS_Score\nfine,9\nmeh,not-a-number\nshort\n")
	ds, err := LoadCSV(path)
	require.NoError(t, err)

	t.Run("column lookup is case-insensitive", func(t *testing.T) {
		reviews, err := ds.Reviews("review_text", "nps_score")
		require.NoError(t, err)
		require.Len(t, reviews, 3)

		assert.Equal(t, "fine", reviews[0].Text)
		require.NotNil(t, reviews[0].RawScore)
		assert.Equal(t, 9.0, *reviews[0].RawScore)

		// Unparseable and missing score cells stay nil.
		assert.Nil(t, reviews[1].RawScore)
		assert.Nil(t, reviews[2].RawScore)
	})

	t.Run("missing score column leaves all scores nil", func(t *testing.T) {
		reviews, err := ds.Reviews("review_text", "does_not_exist")
		require.NoError(t, err)
		for _, r := range reviews {
			assert.Nil(t, r.RawScore)
		}
	})

	t.Run("missing text column errors", func(t *testing.T) {
		_, err := ds.Reviews("does_not_exist", "")
		assert.Error(t, err)
	})
}
