package httpclient

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"BarInventory/internal/config"

	"github.com/sirupsen/logrus"
)

// NewHTTPClient builds the catalog client. Every request is bounded by catalog.timeout and gzip
// bodies are decoded before the caller sees them.
func NewHTTPClient(cfg *config.CatalogConfig, logger *logrus.Logger) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil || proxyURL.Host == "" {
			return nil, fmt.Errorf("catalog.proxy %q: not an absolute url", cfg.Proxy)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.WithField("proxy", proxyURL.Host).Info("catalog client uses proxy")
	}

	return &http.Client{
		Timeout:   time.Duration(cfg.Timeout) * time.Second,
		Transport: &gzipTransport{base: transport},
	}, nil
}

// gzipTransport asks for gzip and unwraps it.
type gzipTransport struct {
	base http.RoundTripper
}

func (t *gzipTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Header.Get("Content-Encoding") != "gzip" {
		return resp, nil
	}

	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("gzip response from %s: %w", req.URL.Host, err)
	}
	resp.Body = &gzipBody{Reader: zr, body: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

type gzipBody struct {
	*gzip.Reader
	body io.ReadCloser
}

func (g *gzipBody) Close() error {
	zerr := g.Reader.Close()
	if err := g.body.Close(); err != nil {
		return err
	}
	return zerr
}
