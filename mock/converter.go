package mock

import (
	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

var _ chatbot.Converter = (*Converter)(nil)

// Converter is a mock implementation of chatbot.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
