package seoscan

import (
	"net/url"
	"strings"

	"github.com/seolens/seolens/internal/platform/errs"
)

// NormalizeURL canonicalizes raw user input into a fetchable absolute URL.
// Input without a scheme gets https:// prepended. It validates syntax only and
// never resolves DNS.
func NormalizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "A URL is required (e.g. https://example.com).",
		}
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format. Please ensure you entered a valid URL (e.g. https://example.com).",
			Cause:   err,
		}
	}
	if parsed.Host == "" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format. The URL must include a host (e.g. https://example.com).",
		}
	}

	return parsed, nil
}
