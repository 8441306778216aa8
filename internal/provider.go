package pooltop

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	infoPath      = "/api/info"
	infoChartPath = "/api/info/chart"
	networkPath   = "/api/network"
)

// Provider is the pool API the poller reads from
type Provider interface {
	GetInfo(ctx context.Context) (Info, error)
	GetInfoChart(ctx context.Context) (Series, error)
	GetNetworkInfo(ctx context.Context) (NetworkInfo, error)
}

// HTTPProvider reads the pool's public JSON API
type HTTPProvider struct {
	client *http.Client
	url    *url.URL
}

// NewHTTPProvider creates a provider rooted at baseURL. The timeout applies
// to each request.
func NewHTTPProvider(baseURL *url.URL, timeout time.Duration) (*HTTPProvider, error) {
	if baseURL == nil || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid pool url %q", baseURL)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q in pool url", baseURL.Scheme)
	}
	if timeout <= 0 {
		timeout = RequestTimeoutDuration()
	}
	u := *baseURL
	u.Path = strings.TrimSuffix(u.Path, "/")
	return &HTTPProvider{
		client: &http.Client{Timeout: timeout},
		url:    &u,
	}, nil
}

// URL returns the API base URL
func (p *HTTPProvider) URL() *url.URL {
	u := *p.url
	return &u
}

// Check verifies the base URL serves the pool info endpoint
func (p *HTTPProvider) Check(ctx context.Context) error {
	if _, err := p.GetInfo(ctx); err != nil {
		return fmt.Errorf("pool API check failed: %w", err)
	}
	return nil
}

func (p *HTTPProvider) GetInfo(ctx context.Context) (Info, error) {
	var info Info
	if err := p.getJSON(ctx, infoPath, &info); err != nil {
		return Info{}, err
	}
	return info, nil
}

func (p *HTTPProvider) GetInfoChart(ctx context.Context) (Series, error) {
	var series Series
	if err := p.getJSON(ctx, infoChartPath, &series); err != nil {
		return nil, err
	}
	return series, nil
}

func (p *HTTPProvider) GetNetworkInfo(ctx context.Context) (NetworkInfo, error) {
	var network NetworkInfo
	if err := p.getJSON(ctx, networkPath, &network); err != nil {
		return NetworkInfo{}, err
	}
	return network, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, path string, v any) error {
	endpoint := *p.url
	endpoint.Path = p.url.Path + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: http status %s", path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := fastJSONUnmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
