// Package extract parses fetched HTML into the normalized signal set the
// scrape pipeline feeds to the language model: page metadata, structured
// JSON-LD entries, and a cleaned body text.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxTextLength caps the cleaned body text to keep the downstream
// model payload bounded.
const DefaultMaxTextLength = 10000

// Signals is the normalized bag of content extracted from a page. Missing
// fields are empty strings, never errors.
type Signals struct {
	Title           string
	MetaDescription string
	OGTitle         string
	OGDescription   string
	CleanText       string
	StructuredData  []any
}

// DefaultContentSelectors is the ordered list of regions likely to hold the
// posting body. The first selector matching at least one element wins, so
// order is significant: semantic main regions first, then job-board specific
// classes, then generic content containers.
func DefaultContentSelectors() []string {
	return []string{
		"main",
		"[role=\"main\"]",
		".job-description",
		".job-details",
		".job-content",
		".job-posting",
		".position-description",
		".job-summary",
		".content",
		".main-content",
		"article",
		".post-content",
	}
}

// DefaultNoiseSelectors lists elements removed before text extraction so
// chrome and ads cannot pollute the cleaned text.
func DefaultNoiseSelectors() []string {
	return []string{
		"script", "style", "nav", "footer", "header", "aside",
		".nav", ".footer", ".header", ".sidebar", ".advertisement", ".ads",
	}
}

// Options tunes extraction. Nil or zero values fall back to defaults.
type Options struct {
	ContentSelectors []string
	NoiseSelectors   []string
	MaxTextLength    int
}

func (o *Options) normalize() {
	if len(o.ContentSelectors) == 0 {
		o.ContentSelectors = DefaultContentSelectors()
	}
	if len(o.NoiseSelectors) == 0 {
		o.NoiseSelectors = DefaultNoiseSelectors()
	}
	if o.MaxTextLength <= 0 {
		o.MaxTextLength = DefaultMaxTextLength
	}
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// HTML extracts signals from raw HTML. It never fails: unparseable input
// yields empty signals, and malformed JSON-LD blocks are skipped silently.
func HTML(html string, opts *Options) *Signals {
	// Normalize a copy so a shared Options is never written to.
	var o Options
	if opts != nil {
		o = *opts
	}
	o.normalize()

	signals := &Signals{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// goquery's html parser is lenient; this is effectively unreachable
		// for string input, but the contract is no-error regardless.
		return signals
	}

	signals.Title = strings.TrimSpace(doc.Find("title").First().Text())
	signals.MetaDescription = metaContent(doc, `meta[name="description"]`)
	signals.OGTitle = metaContent(doc, `meta[property="og:title"]`)
	signals.OGDescription = metaContent(doc, `meta[property="og:description"]`)

	// JSON-LD blocks must be read before noise removal strips script tags.
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var entry any
		if err := json.Unmarshal([]byte(sel.Text()), &entry); err == nil {
			signals.StructuredData = append(signals.StructuredData, entry)
		}
	})

	doc.Find(strings.Join(o.NoiseSelectors, ", ")).Remove()

	var text string
	for _, selector := range o.ContentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			text = collapseWhitespace(sel.First().Text())
			break
		}
	}
	// A matched region holding only whitespace counts as empty.
	if text == "" {
		text = collapseWhitespace(doc.Find("body").Text())
	}

	signals.CleanText = truncate(text, o.MaxTextLength)
	return signals
}

// metaContent returns the content attribute of the first matching meta tag.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return content
}

// collapseWhitespace reduces every whitespace run to a single space and trims.
func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

// truncate caps text at max characters without splitting a UTF-8 sequence.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
