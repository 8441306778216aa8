package pooltop

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// TryConnectWithFallbacks tries URL variants of the given pool address and
// returns the first provider whose API check passes
func TryConnectWithFallbacks(ctx context.Context, baseURL *url.URL, timeout time.Duration, log *zap.SugaredLogger) (*HTTPProvider, error) {
	variants := generateURLVariants(baseURL)
	for _, variant := range variants {
		log.Debugw("trying pool API", "url", variant.String())
		p, err := NewHTTPProvider(variant, timeout)
		if err != nil {
			log.Debugw("skipping pool url", "url", variant.String(), "error", err)
			continue
		}
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		err = p.Check(checkCtx)
		cancel()
		if err != nil {
			log.Debugw("pool API check failed", "url", variant.String(), "error", err)
			continue
		}
		log.Infow("found pool API", "url", variant.String())
		return p, nil
	}
	return nil, fmt.Errorf("no pool API found at %s (%d variants tried)", baseURL, len(variants))
}

// generateURLVariants creates different URL combinations to try
func generateURLVariants(base *url.URL) []*url.URL {
	var variants []*url.URL
	hostname := base.Hostname()
	port := base.Port()
	path := base.Path

	// Schemes to try: prefer HTTPS, fallback to HTTP
	schemes := []string{"https", "http"}
	if base.Scheme == "http" {
		schemes = []string{"http", "https"}
	}

	// Ports to try: the given one first, then the scheme default and the
	// pool API's usual port. An empty port means the scheme default.
	ports := []string{port, "", "3334"}

	seen := make(map[string]bool)
	uniquePorts := []string{}
	for _, p := range ports {
		if !seen[p] {
			seen[p] = true
			uniquePorts = append(uniquePorts, p)
		}
	}
	ports = uniquePorts

	paths := []string{path}
	if path == "" || path == "/" {
		paths = []string{"", "/public-pool"}
	}

	for _, scheme := range schemes {
		for _, p := range ports {
			host := hostname
			if p != "" {
				host = hostname + ":" + p
			}
			for _, urlPath := range paths {
				variants = append(variants, &url.URL{
					Scheme: scheme,
					Host:   host,
					Path:   urlPath,
				})
			}
		}
	}

	return variants
}
