package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchSize(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		assert.Equal(t, DefaultBatchSize, BatchSize())
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("ASPECTLENS_BATCH_SIZE", "32")
		assert.Equal(t, 32, BatchSize())
	})

	t.Run("invalid value falls back", func(t *testing.T) {
		t.Setenv("ASPECTLENS_BATCH_SIZE", "not-a-number")
		assert.Equal(t, DefaultBatchSize, BatchSize())
	})

	t.Run("non-positive value falls back", func(t *testing.T) {
		t.Setenv("ASPECTLENS_BATCH_SIZE", "-4")
		assert.Equal(t, DefaultBatchSize, BatchSize())
	})
}

func TestTopAspects(t *testing.T) {
	assert.Equal(t, DefaultTopAspects, TopAspects())

	t.Setenv("ASPECTLENS_TOP_ASPECTS", "10")
	assert.Equal(t, 10, TopAspects())
}

func TestModelDir(t *testing.T) {
	assert.Equal(t, DefaultModelDir, ModelDir())

	t.Setenv("ASPECTLENS_MODEL_DIR", "/tmp/models")
	assert.Equal(t, "/tmp/models", ModelDir())
}
