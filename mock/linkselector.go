package mock

import (
	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

var _ chatbot.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of chatbot.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]chatbot.DiscoveredLink, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]chatbot.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}
