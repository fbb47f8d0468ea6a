package seoscan

import (
	"fmt"

	"github.com/seolens/seolens/internal/model"
)

// RulesVersion identifies the current weight/threshold table. Any change to
// weights or thresholds is a versioned design decision covered by regression
// tests, not a runtime parameter.
const RulesVersion = "2025.1"

// category assigns a rule's penalty to one of the three sub-scores.
type category int

const (
	categoryTechnical category = iota
	categoryContent
	categoryPerformance
)

// rule is one row of the canonical scoring table. The scorer sums penalties
// and the classifier emits messages from the same rows, so a score deduction
// always has a matching listed issue and vice versa.
type rule struct {
	name     string
	category category
	penalty  int
	severity model.Severity
	applies  func(f model.PageFacts) bool
	message  func(f model.PageFacts) string
}

const (
	kilobyte = 1024

	titleMin       = 30
	titleMax       = 60
	descriptionMin = 100
	descriptionMax = 160
)

// rules is the single source of truth for SEO quality in this system.
// Length tiers (title, description) and measurement tiers (load time, page
// size, image count) are mutually exclusive: only the highest applicable tier
// fires.
var rules = []rule{
	// Technical.
	{
		name: "missing-https", category: categoryTechnical, penalty: 20, severity: model.SeverityCritical,
		applies: func(f model.PageFacts) bool { return !f.HasSSL },
		message: func(model.PageFacts) string { return "Page is not served over HTTPS" },
	},
	{
		name: "missing-h1", category: categoryTechnical, penalty: 15, severity: model.SeverityHigh,
		applies: func(f model.PageFacts) bool { return f.H1Count == 0 },
		message: func(model.PageFacts) string { return "Page has no H1 heading" },
	},
	{
		name: "multiple-h1", category: categoryTechnical, penalty: 8, severity: model.SeverityHigh,
		applies: func(f model.PageFacts) bool { return f.H1Count > 1 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page has %d H1 headings (recommended: exactly 1)", f.H1Count)
		},
	},
	{
		name: "missing-viewport", category: categoryTechnical, penalty: 10, severity: model.SeverityHigh,
		applies: func(f model.PageFacts) bool { return !f.HasViewportMeta },
		message: func(model.PageFacts) string { return "Page is missing the viewport meta tag for mobile devices" },
	},
	{
		name: "missing-robots-txt", category: categoryTechnical, penalty: 5, severity: model.SeverityLow,
		applies: func(f model.PageFacts) bool { return !f.HasRobotsTxt },
		message: func(model.PageFacts) string { return "No robots.txt file was found" },
	},
	{
		name: "missing-sitemap", category: categoryTechnical, penalty: 5, severity: model.SeverityLow,
		applies: func(f model.PageFacts) bool { return !f.HasSitemapXML },
		message: func(model.PageFacts) string { return "No sitemap.xml file was found" },
	},
	{
		name: "missing-canonical", category: categoryTechnical, penalty: 5, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.CanonicalURL == "" },
		message: func(model.PageFacts) string { return "Page has no canonical URL" },
	},

	// Content.
	{
		name: "missing-title", category: categoryContent, penalty: 25, severity: model.SeverityCritical,
		applies: func(f model.PageFacts) bool { return f.Title == "" },
		message: func(model.PageFacts) string { return "Page has no title tag" },
	},
	{
		name: "short-title", category: categoryContent, penalty: 15, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.Title != "" && f.TitleLength < titleMin },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Title is %d characters (recommended: %d-%d)", f.TitleLength, titleMin, titleMax)
		},
	},
	{
		name: "long-title", category: categoryContent, penalty: 10, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.TitleLength > titleMax },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Title is %d characters (recommended: %d-%d)", f.TitleLength, titleMin, titleMax)
		},
	},
	{
		name: "missing-description", category: categoryContent, penalty: 25, severity: model.SeverityHigh,
		applies: func(f model.PageFacts) bool { return f.MetaDescription == "" },
		message: func(model.PageFacts) string { return "Page has no meta description" },
	},
	{
		name: "short-description", category: categoryContent, penalty: 15, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool {
			return f.MetaDescription != "" && f.MetaDescriptionLength < descriptionMin
		},
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Meta description is %d characters (recommended: %d-%d)",
				f.MetaDescriptionLength, descriptionMin, descriptionMax)
		},
	},
	{
		name: "long-description", category: categoryContent, penalty: 10, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.MetaDescriptionLength > descriptionMax },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Meta description is %d characters (recommended: %d-%d)",
				f.MetaDescriptionLength, descriptionMin, descriptionMax)
		},
	},
	{
		name: "thin-content", category: categoryContent, penalty: 20, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.WordCount < 300 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page has only %d words of visible text (recommended: 300+)", f.WordCount)
		},
	},
	{
		name: "low-content", category: categoryContent, penalty: 10, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.WordCount >= 300 && f.WordCount < 600 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page has %d words of visible text (600+ performs better)", f.WordCount)
		},
	},
	{
		name: "alt-text-mostly-missing", category: categoryContent, penalty: 15, severity: model.SeverityLow,
		applies: func(f model.PageFacts) bool { return missingAltRatio(f) > 0.5 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("%d of %d images are missing alt text", f.ImagesWithoutAlt, f.ImageCount)
		},
	},
	{
		name: "alt-text-partly-missing", category: categoryContent, penalty: 8, severity: model.SeverityLow,
		applies: func(f model.PageFacts) bool {
			ratio := missingAltRatio(f)
			return ratio > 0.3 && ratio <= 0.5
		},
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("%d of %d images are missing alt text", f.ImagesWithoutAlt, f.ImageCount)
		},
	},
	{
		name: "missing-og-title", category: categoryContent, penalty: 5, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.OGTitle == "" },
		message: func(model.PageFacts) string { return "Page has no Open Graph title" },
	},
	{
		name: "missing-og-description", category: categoryContent, penalty: 5, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.OGDescription == "" },
		message: func(model.PageFacts) string { return "Page has no Open Graph description" },
	},

	// Performance.
	{
		name: "load-time-very-slow", category: categoryPerformance, penalty: 50, severity: model.SeverityHigh,
		applies: func(f model.PageFacts) bool { return f.LoadTimeMs > 5000 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page took %dms to load (over 5s)", f.LoadTimeMs)
		},
	},
	{
		name: "load-time-slow", category: categoryPerformance, penalty: 35, severity: model.SeverityHigh,
		applies: func(f model.PageFacts) bool { return f.LoadTimeMs > 3000 && f.LoadTimeMs <= 5000 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page took %dms to load (over 3s)", f.LoadTimeMs)
		},
	},
	{
		name: "load-time-moderate", category: categoryPerformance, penalty: 20, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.LoadTimeMs > 2000 && f.LoadTimeMs <= 3000 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page took %dms to load (over 2s)", f.LoadTimeMs)
		},
	},
	{
		name: "load-time-fair", category: categoryPerformance, penalty: 10, severity: model.SeverityLow,
		applies: func(f model.PageFacts) bool { return f.LoadTimeMs > 1000 && f.LoadTimeMs <= 2000 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page took %dms to load (over 1s)", f.LoadTimeMs)
		},
	},
	{
		name: "page-size-very-large", category: categoryPerformance, penalty: 30, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.PageSizeBytes > 5000*kilobyte },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page is %dKB (over 5000KB)", f.PageSizeBytes/kilobyte)
		},
	},
	{
		name: "page-size-large", category: categoryPerformance, penalty: 20, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool {
			return f.PageSizeBytes > 3000*kilobyte && f.PageSizeBytes <= 5000*kilobyte
		},
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page is %dKB (over 3000KB)", f.PageSizeBytes/kilobyte)
		},
	},
	{
		name: "page-size-moderate", category: categoryPerformance, penalty: 10, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool {
			return f.PageSizeBytes > 2000*kilobyte && f.PageSizeBytes <= 3000*kilobyte
		},
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page is %dKB (over 2000KB)", f.PageSizeBytes/kilobyte)
		},
	},
	{
		name: "image-count-very-high", category: categoryPerformance, penalty: 20, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.ImageCount > 50 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page loads %d images (over 50)", f.ImageCount)
		},
	},
	{
		name: "image-count-high", category: categoryPerformance, penalty: 10, severity: model.SeverityMedium,
		applies: func(f model.PageFacts) bool { return f.ImageCount > 30 && f.ImageCount <= 50 },
		message: func(f model.PageFacts) string {
			return fmt.Sprintf("Page loads %d images (over 30)", f.ImageCount)
		},
	},
}

// missingAltRatio is 0 for pages without images; a page with no images has
// no alt-text problem.
func missingAltRatio(f model.PageFacts) float64 {
	if f.ImageCount == 0 {
		return 0
	}
	return float64(f.ImagesWithoutAlt) / float64(f.ImageCount)
}
