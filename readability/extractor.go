// Package readability provides a fallback content extractor, wrapping
// go-readability. It is tried when trafilatura yields nothing usable.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Ensure Extractor implements chatbot.Extractor at compile time.
var _ chatbot.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*chatbot.ExtractResult, error) {
	if rawHTML == "" {
		return nil, chatbot.Errorf(chatbot.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &chatbot.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
