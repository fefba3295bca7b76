package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"MrPredictor/internal/model"
)

var (
	// ErrNoData is returned when the upstream answered but had nothing for the request.
	ErrNoData = errors.New("no data returned")
	// ErrUpstream is returned when the upstream rejected the request.
	ErrUpstream = errors.New("upstream error")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchHistory returns chronological bars of the given interval covering lookback.
	FetchHistory(ctx context.Context, symbol, interval, lookback string) ([]model.Bar, error)
	// FetchLivePrice returns the most recent traded price.
	FetchLivePrice(ctx context.Context, symbol string) (float64, error)
	Name() string
}

// newHTTPClient builds a client with a 30s timeout and optional proxy.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
