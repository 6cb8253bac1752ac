// Package goquery provides last-resort HTML processing for the crawler:
// a whole-page content extractor and a generic same-host link selector.
// Smarter extractors (trafilatura, readability) are preferred; this package
// exists so a page that defeats both still yields usable text.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Ensure Extractor implements chatbot.Extractor at compile time.
var _ chatbot.Extractor = (*Extractor)(nil)

// Extractor extracts page content by stripping non-content elements and
// returning the remaining body HTML. Unlike the trafilatura and readability
// extractors it makes no attempt to locate the main content region.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page body with script, style,
// and noscript elements removed. The title comes from the <title> element.
func (e *Extractor) Extract(rawHTML string) (*chatbot.ExtractResult, error) {
	if rawHTML == "" {
		return nil, chatbot.Errorf(chatbot.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, chatbot.Errorf(chatbot.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return &chatbot.ExtractResult{Title: title}, nil
	}

	var buf bytes.Buffer
	var renderErr error
	body.Children().EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		html, err := goquery.OuterHtml(sel)
		if err != nil {
			renderErr = err
			return false
		}
		buf.WriteString(html)
		return true
	})
	if renderErr != nil {
		return nil, renderErr
	}

	return &chatbot.ExtractResult{
		Title:       title,
		ContentHTML: buf.String(),
	}, nil
}
