package seoscan

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/seolens/seolens/internal/platform/errs"
)

// FetchResult holds everything the transport layer learned about the page:
// the raw HTML, the final post-redirect URL, timing and size measurements,
// and the results of the two auxiliary probes.
type FetchResult struct {
	HTML          string
	FinalURL      *url.URL
	StatusCode    int
	ElapsedMs     int
	PageSizeBytes int
	HasRobotsTxt  bool
	HasSitemapXML bool
}

// Fetcher defines how the engine retrieves a page.
type Fetcher interface {
	Fetch(ctx context.Context, target *url.URL) (*FetchResult, error)
}

const (
	maxRedirects = 5

	// Many real sites block default HTTP client identifiers, so the fetcher
	// presents itself as a regular browser.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// Limit response bodies to 10 MB to prevent memory exhaustion from
	// extremely large or infinite responses.
	maxResponseBody = 10 << 20
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
)

// PageFetcher implements Fetcher with a pooled http.Client and a Prober for
// the robots.txt/sitemap.xml side checks.
type PageFetcher struct {
	client *http.Client
	prober *Prober
}

// NewPageFetcher returns a PageFetcher with the given wall-clock timeout, a
// dedicated transport that blocks connections to private/reserved IP ranges,
// and redirect validation that prevents SSRF via redirect chains.
func NewPageFetcher(timeout, probeTimeout time.Duration) *PageFetcher {
	transport := &http.Transport{
		DialContext:         safeDialer().DialContext,
		MaxConnsPerHost:     10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return newPageFetcher(timeout, transport, newProber(probeTimeout, transport))
}

func newPageFetcher(timeout time.Duration, transport http.RoundTripper, prober *Prober) *PageFetcher {
	return &PageFetcher{
		client: &http.Client{
			Timeout:       timeout,
			Transport:     transport,
			CheckRedirect: safeRedirectPolicy,
		},
		prober: prober,
	}
}

// safeRedirectPolicy validates redirect targets and limits the redirect chain length.
func safeRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Fetch performs the single GET, following redirects and measuring wall-clock
// load time over the full body read. A non-2xx status is a reportable failure,
// not a degraded success. After a successful fetch the robots.txt and
// sitemap.xml probes run against the final URL's host; both complete (or time
// out) before Fetch returns.
func (f *PageFetcher) Fetch(ctx context.Context, target *url.URL) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format.",
			Cause:   err,
		}
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	elapsed := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errs.AppError{
			Kind:           errs.NonSuccessStatus,
			UpstreamStatus: resp.StatusCode,
			Message:        fmt.Sprintf("The page returned HTTP %d instead of a success status.", resp.StatusCode),
		}
	}

	finalURL := resp.Request.URL
	robots, sitemap := f.prober.Probe(ctx, finalURL)

	return &FetchResult{
		HTML:          string(body),
		FinalURL:      finalURL,
		StatusCode:    resp.StatusCode,
		ElapsedMs:     int(elapsed.Milliseconds()),
		PageSizeBytes: len(body),
		HasRobotsTxt:  robots,
		HasSitemapXML: sitemap,
	}, nil
}

// classifyTransportError maps a transport failure onto the fetch-error
// taxonomy so callers can tell a timeout from a refused connection or a
// broken certificate.
func classifyTransportError(err error) *errs.AppError {
	var (
		netErr  net.Error
		certErr *tls.CertificateVerificationError
		recErr  tls.RecordHeaderError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &errs.AppError{
			Kind:    errs.Timeout,
			Message: "The page took too long to respond.",
			Cause:   err,
		}
	case errors.As(err, &certErr), errors.As(err, &recErr):
		return &errs.AppError{
			Kind:    errs.TLSError,
			Message: "A secure connection to the page could not be established.",
			Cause:   err,
		}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &errs.AppError{
			Kind:    errs.ConnectionRefused,
			Message: "The server refused the connection.",
			Cause:   err,
		}
	default:
		return &errs.AppError{
			Kind:    errs.NetworkError,
			Message: "The page could not be reached. Check the address.",
			Cause:   err,
		}
	}
}
