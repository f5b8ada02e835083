package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"

	"urlcheck/internal/config"
	core "urlcheck/internal/core"
)

// maxBodyBytes caps how much of the endpoint response is read.
const maxBodyBytes = 4 << 20

type httpProvider struct {
	client    *http.Client
	endpoint  string
	userAgent string
	logger    zerolog.Logger
}

// NewHTTP builds a provider that GETs cfg.Endpoint and decodes a JSON array
// of records.
func NewHTTP(cfg config.ProviderConfig, logger zerolog.Logger) (Provider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("http provider: endpoint is required")
	}
	logger = logger.With().Str("component", "http_provider").Logger()

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	if cfg.HTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		} else {
			logger.Debug().Msg("HTTP/2 support enabled")
		}
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = config.DefaultTimeoutSeconds * time.Second
	}

	return &httpProvider{
		client:    &http.Client{Transport: transport, Timeout: timeout},
		endpoint:  cfg.Endpoint,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}, nil
}

func (p *httpProvider) Name() string { return KindHTTP }

func (p *httpProvider) Fetch(ctx context.Context) ([]core.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return nil, core.NewProviderError(p.Name(), err)
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, core.NewProviderError(p.Name(), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, core.NewProviderError(p.Name(), fmt.Errorf("unexpected status %s", resp.Status))
	}

	var records []core.Record
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&records); err != nil {
		return nil, core.NewProviderError(p.Name(), fmt.Errorf("decode response: %w", err))
	}

	p.logger.Debug().
		Str("endpoint", p.endpoint).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched known URLs")
	return records, nil
}
