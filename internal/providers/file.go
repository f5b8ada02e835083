package providers

import (
	"context"

	core "urlcheck/internal/core"
	"urlcheck/internal/store"
)

type fileProvider struct {
	path string
}

// NewFile reads the list from a local JSON file (bare array or snapshot).
func NewFile(path string) Provider {
	return &fileProvider{path: path}
}

func (p *fileProvider) Name() string { return KindFile }

func (p *fileProvider) Fetch(ctx context.Context) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.NewProviderError(p.Name(), err)
	}
	records, err := store.LoadSnapshot(p.path)
	if err != nil {
		return nil, core.NewProviderError(p.Name(), err)
	}
	return records, nil
}
