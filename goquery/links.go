package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Ensure Selector implements chatbot.LinkSelector at compile time.
var _ chatbot.LinkSelector = (*Selector)(nil)

// selectorConfig pairs a CSS selector with the priority of its links.
type selectorConfig struct {
	selector string
	priority chatbot.LinkPriority
}

// configs are checked in order; a link found by multiple selectors keeps its
// highest priority.
var configs = []selectorConfig{
	{"nav a[href]", chatbot.PriorityNavigation},
	{"main a[href], article a[href]", chatbot.PriorityContent},
	{"a[href]", chatbot.PriorityFallback},
}

// Selector extracts same-host links from arbitrary HTML. It has no knowledge
// of any particular site structure; navigation and main-content links are
// preferred over everything else.
type Selector struct{}

// NewSelector creates a new Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// ExtractLinks parses HTML and returns discovered same-host links,
// deduplicated by URL with the highest priority kept.
func (s *Selector) ExtractLinks(html string, baseURL string) ([]chatbot.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, chatbot.Errorf(chatbot.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, chatbot.Errorf(chatbot.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates.
	seen := make(map[string]int)
	var links []chatbot.DiscoveredLink

	for _, config := range configs {
		doc.Find(config.selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}
			if !isSameHost(base, resolved) {
				return
			}

			link := chatbot.DiscoveredLink{
				URL:      resolved,
				Priority: config.priority,
				Text:     strings.TrimSpace(sel.Text()),
			}

			if idx, ok := seen[resolved]; ok {
				if config.priority > links[idx].Priority {
					links[idx] = link
				}
				return
			}
			seen[resolved] = len(links)
			links = append(links, link)
		})
	}

	return links, nil
}

// isNonHTTPLink reports whether href uses a scheme the crawler cannot follow
// (javascript:, mailto:, tel:, and similar).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "ftp:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base, stripping any fragment.
// Returns "" if href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isSameHost reports whether resolved points at the same host as base.
// Subdomains count as different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}
