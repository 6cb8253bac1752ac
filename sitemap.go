package chatbot

import "context"

// SitemapService discovers page URLs from website sitemaps. The crawler uses
// sitemaps as a fast path; sites without one fall back to recursive link
// walking.
type SitemapService interface {
	// DiscoverURLs finds page URLs for a site. It checks robots.txt for
	// sitemap directives, then falls back to /sitemap.xml. Sitemap indexes
	// are resolved recursively. Returns an empty slice when no sitemap
	// exists.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
