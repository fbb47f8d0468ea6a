package model

import "time"

// Severity buckets findings by how urgently they should be fixed.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all buckets in descending order of urgency.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// PageFacts is the typed snapshot of everything extracted from a single page.
// It is produced once per scan and never mutated afterward. Every field has a
// meaningful zero value so a malformed document degrades per-field instead of
// failing the scan.
type PageFacts struct {
	URL        string `json:"url"`
	HTTPStatus int    `json:"http_status"`
	HasSSL     bool   `json:"has_ssl"`

	LoadTimeMs    int `json:"load_time_ms"`
	PageSizeBytes int `json:"page_size_bytes"`

	Title                 string `json:"title"`
	TitleLength           int    `json:"title_length"`
	MetaDescription       string `json:"meta_description"`
	MetaDescriptionLength int    `json:"meta_description_length"`
	CanonicalURL          string `json:"canonical_url"`
	OGTitle               string `json:"og_title"`
	OGDescription         string `json:"og_description"`

	H1Count int `json:"h1_count"`
	H2Count int `json:"h2_count"`

	ImageCount       int `json:"image_count"`
	ImagesWithoutAlt int `json:"images_without_alt"`

	LinkCount         int `json:"link_count"`
	InternalLinkCount int `json:"internal_link_count"`
	ExternalLinkCount int `json:"external_link_count"`

	WordCount int `json:"word_count"`

	HasViewportMeta bool `json:"has_viewport_meta"`
	HasRobotsTxt    bool `json:"has_robots_txt"`
	HasSitemapXML   bool `json:"has_sitemap_xml"`
}

// ScoreBreakdown holds the three weighted sub-scores and the overall score.
// All values are clamped to [0,100].
type ScoreBreakdown struct {
	Technical   int `json:"technical"`
	Content     int `json:"content"`
	Performance int `json:"performance"`
	Overall     int `json:"overall"`
}

// Issue is a single human-readable finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ScanResult is the aggregate produced by one scan. It is assembled once by
// the engine and never mutated; enrichment lives on ScanRecord.
type ScanResult struct {
	URL       string               `json:"url"`
	Domain    string               `json:"domain"`
	Facts     PageFacts            `json:"facts"`
	Scores    ScoreBreakdown       `json:"scores"`
	Issues    map[Severity][]Issue `json:"issues"`
	ScannedAt time.Time            `json:"scanned_at"`
}

// IssueCount returns the total number of issues across all severities.
func (r *ScanResult) IssueCount() int {
	var n int
	for _, issues := range r.Issues {
		n += len(issues)
	}
	return n
}

// ScanRecord is the caller-owned envelope around a ScanResult: the stored id
// and the optional AI recommendation, attached after the scan completed.
type ScanRecord struct {
	ID             string      `json:"id,omitempty"`
	Result         *ScanResult `json:"result"`
	Recommendation string      `json:"recommendation,omitempty"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
