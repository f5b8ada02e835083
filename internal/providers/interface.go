package providers

import (
	"context"

	core "urlcheck/internal/core"
)

//go:generate mockgen -destination=../mocks/mock_provider.go -package=mocks urlcheck/internal/providers Provider

// Provider supplies the known-URL list.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) ([]core.Record, error)
}
