package seoscan

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Prober performs the best-effort HEAD checks for /robots.txt and
// /sitemap.xml. Probe failures are swallowed: any error simply reads as
// "not present" and never escalates to a scan-level failure.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// NewProber returns a Prober whose requests share the fetcher's SSRF
// protections and carry their own short per-probe timeout.
func NewProber(timeout time.Duration) *Prober {
	return newProber(timeout, &http.Transport{
		DialContext:         safeDialer().DialContext,
		MaxConnsPerHost:     2,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	})
}

func newProber(timeout time.Duration, transport http.RoundTripper) *Prober {
	return &Prober{
		timeout: timeout,
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Probe checks /robots.txt and /sitemap.xml on the host of base. The two
// checks run concurrently with each other and both finish (or time out)
// before Probe returns.
func (p *Prober) Probe(ctx context.Context, base *url.URL) (robots, sitemap bool) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		robots = p.exists(ctx, base, "/robots.txt")
	}()
	go func() {
		defer wg.Done()
		sitemap = p.exists(ctx, base, "/sitemap.xml")
	}()
	wg.Wait()
	return robots, sitemap
}

// exists performs a HEAD request and reports whether the path answered with a
// non-error status. Defaults to false on any failure.
func (p *Prober) exists(ctx context.Context, base *url.URL, path string) bool {
	probeURL := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: path}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL.String(), nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode < 400
}
