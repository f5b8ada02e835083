package providers

import (
	"context"

	core "urlcheck/internal/core"
)

// sampleRecords mirrors what the default mock endpoint serves.
var sampleRecords = []core.Record{
	{URL: "http://test.com", Type: "file"},
	{URL: "http://test1.com", Type: "folder"},
	{URL: "http://test2.com", Type: "folder"},
	{URL: "http://test3.com", Type: "file"},
	{URL: "http://test4.com", Type: "file"},
	{URL: "http://test5.com", Type: "folder"},
}

type sampleProvider struct{}

// Sample returns a provider serving the built-in sample list.
func Sample() Provider { return sampleProvider{} }

func (sampleProvider) Name() string { return KindSample }

func (sampleProvider) Fetch(ctx context.Context) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.NewProviderError(KindSample, err)
	}
	out := make([]core.Record, len(sampleRecords))
	copy(out, sampleRecords)
	return out, nil
}
