package providers

import (
	"fmt"

	"github.com/rs/zerolog"

	"urlcheck/internal/config"
)

const (
	KindHTTP   = "http"
	KindFile   = "file"
	KindSample = "sample"
)

// NewProvider returns a concrete provider for cfg.Kind.
func NewProvider(cfg config.ProviderConfig, logger zerolog.Logger) (Provider, error) {
	switch cfg.Kind {
	case KindHTTP:
		return NewHTTP(cfg, logger)
	case KindFile:
		return NewFile(cfg.File), nil
	case KindSample:
		return Sample(), nil
	default:
		return nil, fmt.Errorf("unknown provider kind: %q", cfg.Kind)
	}
}
