package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/subosito/gotenv"
)

// Defaults for knobs that are usually left alone.
const (
	DefaultBatchSize  = 256
	DefaultTopAspects = 5
	DefaultModelDir   = "./models"
)

// LoadEnv loads config/envs/.env.<env> into the process environment.
// Missing files are fine; the OS environment is used as-is.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment",
			slog.String("file", envFile))
	}
}

// BatchSize returns the classifier batch size, ASPECTLENS_BATCH_SIZE
// overriding the default.
func BatchSize() int {
	return intEnv("ASPECTLENS_BATCH_SIZE", DefaultBatchSize)
}

// TopAspects returns how many negative aspects get a deep-dive report.
func TopAspects() int {
	return intEnv("ASPECTLENS_TOP_ASPECTS", DefaultTopAspects)
}

// ModelDir returns the directory the ONNX sentiment model is cached in.
func ModelDir() string {
	if dir := os.Getenv("ASPECTLENS_MODEL_DIR"); dir != "" {
		return dir
	}
	return DefaultModelDir
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("Ignoring invalid numeric env value",
			slog.String("key", key),
			slog.String("value", raw))
		return fallback
	}
	return v
}
