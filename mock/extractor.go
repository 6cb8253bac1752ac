package mock

import (
	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

var _ chatbot.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of chatbot.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*chatbot.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*chatbot.ExtractResult, error) {
	return e.ExtractFn(html)
}
