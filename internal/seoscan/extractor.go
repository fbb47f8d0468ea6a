package seoscan

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/seolens/seolens/internal/model"
)

// Extract parses the HTML document into a PageFacts snapshot. It is a total
// function: malformed or incomplete markup yields zero values for the
// affected fields, never an error. Transport-level fields (status, timing,
// size, probe results) are filled in by the engine from the FetchResult.
func Extract(htmlSource string, finalURL *url.URL) model.PageFacts {
	facts := model.PageFacts{
		URL:    finalURL.String(),
		HasSSL: strings.EqualFold(finalURL.Scheme, "https"),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSource))
	if err != nil {
		return facts
	}

	facts.Title = strings.TrimSpace(doc.Find("title").First().Text())
	facts.TitleLength = utf8.RuneCountInString(facts.Title)

	extractMetaTags(doc, &facts)
	extractCanonical(doc, &facts)

	facts.H1Count = doc.Find("h1").Length()
	facts.H2Count = doc.Find("h2").Length()

	extractImages(doc, &facts)
	extractLinks(doc, finalURL, &facts)

	// Word counting mutates the document, so it runs last.
	facts.WordCount = countVisibleWords(doc)

	return facts
}

// extractMetaTags walks all meta tags once; the first matching tag wins for
// each field, matching how search engines read duplicated metadata.
func extractMetaTags(doc *goquery.Document, facts *model.PageFacts) {
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		property, _ := s.Attr("property")
		content, _ := s.Attr("content")

		switch {
		case strings.EqualFold(name, "description"):
			if facts.MetaDescription == "" {
				facts.MetaDescription = content
				facts.MetaDescriptionLength = utf8.RuneCountInString(content)
			}
		case strings.EqualFold(name, "viewport"):
			facts.HasViewportMeta = true
		case strings.EqualFold(property, "og:title"):
			if facts.OGTitle == "" {
				facts.OGTitle = content
			}
		case strings.EqualFold(property, "og:description"):
			if facts.OGDescription == "" {
				facts.OGDescription = content
			}
		}
	})
}

func extractCanonical(doc *goquery.Document, facts *model.PageFacts) {
	doc.Find("link").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		if !strings.EqualFold(rel, "canonical") {
			return true
		}
		facts.CanonicalURL, _ = s.Attr("href")
		return false
	})
}

// extractImages counts images and those lacking usable alt text. An alt
// attribute that is present but empty still counts as missing; the empty
// string carries no information for assistive tech or indexing.
func extractImages(doc *goquery.Document, facts *model.PageFacts) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		facts.ImageCount++
		alt, ok := s.Attr("alt")
		if !ok || strings.TrimSpace(alt) == "" {
			facts.ImagesWithoutAlt++
		}
	})
}

// extractLinks classifies anchors against the final URL's host. Fragment-only,
// empty, and non-navigational (javascript:, mailto:, tel:) targets are
// excluded from all counts.
func extractLinks(doc *goquery.Document, finalURL *url.URL, facts *model.PageFacts) {
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := finalURL.ResolveReference(parsed)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		facts.LinkCount++
		if strings.EqualFold(resolved.Host, finalURL.Host) {
			facts.InternalLinkCount++
		} else {
			facts.ExternalLinkCount++
		}
	})
}

// countVisibleWords approximates the visible text of the page: boilerplate
// subtrees (script, style, nav, header, footer) are dropped, the remaining
// text is split on whitespace.
func countVisibleWords(doc *goquery.Document) int {
	doc.Find("script, style, nav, header, footer").Remove()
	return len(strings.Fields(doc.Find("body").Text()))
}
