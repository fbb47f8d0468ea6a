package seoscan

import (
	"context"
	"time"

	"github.com/seolens/seolens/internal/model"
)

// Engine sequences one scan: normalize, fetch, extract, score, classify.
// Scoring and classification are pure functions of the same fact snapshot;
// the engine assembles their output into a single immutable ScanResult.
type Engine struct {
	fetcher Fetcher
}

// NewEngine returns an Engine backed by the given Fetcher.
func NewEngine(fetcher Fetcher) *Engine {
	return &Engine{fetcher: fetcher}
}

// Scan runs the full pipeline for raw user input. InvalidInput and fetch
// errors abort the scan and surface verbatim; once the fetch succeeded the
// remaining stages cannot fail.
func (e *Engine) Scan(ctx context.Context, rawURL string) (*model.ScanResult, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	fetched, err := e.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	// All domain-derived facts are computed against the final post-redirect
	// URL, not the input.
	facts := Extract(fetched.HTML, fetched.FinalURL)
	facts.HTTPStatus = fetched.StatusCode
	facts.LoadTimeMs = fetched.ElapsedMs
	facts.PageSizeBytes = fetched.PageSizeBytes
	facts.HasRobotsTxt = fetched.HasRobotsTxt
	facts.HasSitemapXML = fetched.HasSitemapXML

	return &model.ScanResult{
		URL:       fetched.FinalURL.String(),
		Domain:    fetched.FinalURL.Hostname(),
		Facts:     facts,
		Scores:    Score(facts),
		Issues:    Classify(facts),
		ScannedAt: time.Now().UTC(),
	}, nil
}
