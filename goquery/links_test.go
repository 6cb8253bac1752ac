package goquery_test

import (
	"testing"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/B-Manish/web-scraper-chatbot/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_ExtractLinks(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<nav><a href="/docs">Docs</a></nav>
		<main>
			<a href="/guide">Guide</a>
			<a href="https://other.example/page">External</a>
			<a href="mailto:hi@example.com">Mail</a>
			<a href="/docs">Docs again</a>
			<a href="/guide#section">Guide anchor</a>
		</main>
	</body></html>`

	s := goquery.NewSelector()
	links, err := s.ExtractLinks(html, "https://example.com/")
	require.NoError(t, err)

	urls := make(map[string]chatbot.LinkPriority)
	for _, l := range links {
		urls[l.URL] = l.Priority
	}

	// External, mailto, and fragment-only duplicates are collapsed.
	assert.Len(t, links, 2)
	assert.Equal(t, chatbot.PriorityNavigation, urls["https://example.com/docs"])
	assert.Equal(t, chatbot.PriorityContent, urls["https://example.com/guide"])
	assert.NotContains(t, urls, "https://other.example/page")
}

func TestSelector_ExtractLinks_InvalidBase(t *testing.T) {
	t.Parallel()

	s := goquery.NewSelector()
	_, err := s.ExtractLinks("<a href='/x'>x</a>", "://bad")
	assert.Error(t, err)
}
