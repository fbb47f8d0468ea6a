package seoscan

import (
	"net/url"
	"testing"
)

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title>Example Domain Homepage</title>
<meta name="description" content="A short description of the example page.">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta property="og:title" content="OG Example">
<link rel="canonical" href="https://example.com/">
<script>var tracking = "not visible text";</script>
</head>
<body>
<nav><a href="/nav-link">Navigation words ignored</a></nav>
<h1>Main</h1>
<h2>Sub one</h2>
<h2>Sub two</h2>
<p>one two three four five</p>
<img src="a.png" alt="described">
<img src="b.png" alt="">
<img src="c.png">
<a href="/about">About</a>
<a href="https://other.com">Other</a>
<a href="#section">Frag</a>
<a href="mailto:x@example.com">Mail</a>
<a href="javascript:void(0)">JS</a>
<a href="tel:+15551234567">Tel</a>
<a href="">Empty</a>
<footer>footer words ignored</footer>
</body>
</html>`

func TestExtract_SamplePage(t *testing.T) {
	facts := Extract(samplePage, mustParseURL("https://example.com/page"))

	if facts.Title != "Example Domain Homepage" {
		t.Errorf("Title = %q, want %q", facts.Title, "Example Domain Homepage")
	}
	if facts.TitleLength != 23 {
		t.Errorf("TitleLength = %d, want 23", facts.TitleLength)
	}
	if facts.MetaDescription != "A short description of the example page." {
		t.Errorf("MetaDescription = %q", facts.MetaDescription)
	}
	if facts.CanonicalURL != "https://example.com/" {
		t.Errorf("CanonicalURL = %q", facts.CanonicalURL)
	}
	if facts.OGTitle != "OG Example" {
		t.Errorf("OGTitle = %q, want %q", facts.OGTitle, "OG Example")
	}
	if facts.OGDescription != "" {
		t.Errorf("OGDescription = %q, want empty", facts.OGDescription)
	}
	if facts.H1Count != 1 || facts.H2Count != 2 {
		t.Errorf("headings = h1:%d h2:%d, want h1:1 h2:2", facts.H1Count, facts.H2Count)
	}
	if !facts.HasViewportMeta {
		t.Error("HasViewportMeta = false, want true")
	}
	if !facts.HasSSL {
		t.Error("HasSSL = false, want true")
	}
}

func TestExtract_Images(t *testing.T) {
	facts := Extract(samplePage, mustParseURL("https://example.com/page"))

	if facts.ImageCount != 3 {
		t.Errorf("ImageCount = %d, want 3", facts.ImageCount)
	}
	// alt="" counts as missing, same as no alt attribute at all.
	if facts.ImagesWithoutAlt != 2 {
		t.Errorf("ImagesWithoutAlt = %d, want 2", facts.ImagesWithoutAlt)
	}
}

func TestExtract_LinkBoundary(t *testing.T) {
	facts := Extract(samplePage, mustParseURL("https://example.com/page"))

	// /nav-link and /about resolve to the final URL's host; other.com does
	// not. Fragment, mailto, javascript, tel, and empty targets are excluded
	// from all counts.
	if facts.LinkCount != 3 {
		t.Errorf("LinkCount = %d, want 3", facts.LinkCount)
	}
	if facts.InternalLinkCount != 2 {
		t.Errorf("InternalLinkCount = %d, want 2", facts.InternalLinkCount)
	}
	if facts.ExternalLinkCount != 1 {
		t.Errorf("ExternalLinkCount = %d, want 1", facts.ExternalLinkCount)
	}
}

func TestExtract_SubdomainIsExternal(t *testing.T) {
	html := `<html><body><a href="https://blog.example.com/post">Blog</a></body></html>`
	facts := Extract(html, mustParseURL("https://example.com"))

	if facts.InternalLinkCount != 0 || facts.ExternalLinkCount != 1 {
		t.Errorf("internal:%d external:%d, want 0/1 (no subdomain folding)",
			facts.InternalLinkCount, facts.ExternalLinkCount)
	}
}

func TestExtract_WordCount(t *testing.T) {
	facts := Extract(samplePage, mustParseURL("https://example.com/page"))

	// Visible text after removing script, style, nav, header, and footer
	// subtrees: h1 (1) + two h2 (4) + paragraph (5) + anchor texts (7).
	if facts.WordCount != 17 {
		t.Errorf("WordCount = %d, want 17", facts.WordCount)
	}
}

func TestExtract_TitleLengthIsRuneCount(t *testing.T) {
	html := `<html><head><title>Café Menü</title></head><body></body></html>`
	facts := Extract(html, mustParseURL("https://example.com"))

	if facts.TitleLength != 9 {
		t.Errorf("TitleLength = %d, want 9 (characters, not bytes)", facts.TitleLength)
	}
}

func TestExtract_FirstTagWins(t *testing.T) {
	html := `<html><head>
	<meta name="description" content="first">
	<meta name="description" content="second">
	<link rel="canonical" href="https://example.com/one">
	<link rel="canonical" href="https://example.com/two">
	</head><body></body></html>`
	facts := Extract(html, mustParseURL("https://example.com"))

	if facts.MetaDescription != "first" {
		t.Errorf("MetaDescription = %q, want %q", facts.MetaDescription, "first")
	}
	if facts.CanonicalURL != "https://example.com/one" {
		t.Errorf("CanonicalURL = %q, want %q", facts.CanonicalURL, "https://example.com/one")
	}
}

func TestExtract_MalformedHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{name: "empty document", html: ""},
		{name: "truncated tag soup", html: `<<<html><head><title>Broken`},
		{name: "unclosed elements", html: `<html><body><h1>One<h2>Two<p>text`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must never panic; missing fields degrade to zero values.
			facts := Extract(tt.html, mustParseURL("http://example.com"))
			if facts.URL != "http://example.com" {
				t.Errorf("URL = %q, want %q", facts.URL, "http://example.com")
			}
			if facts.HasSSL {
				t.Error("HasSSL = true for http URL, want false")
			}
		})
	}
}
