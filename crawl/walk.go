package crawl

import (
	"context"
	"net/url"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Frontier sizing for the recursive walk. The walk itself is bounded by
// MaxDepth and MaxLinks, so these only need headroom for dedup.
const (
	frontierExpectedURLs      = 1000
	frontierFalsePositiveRate = 0.01
)

// walk crawls recursively from the source URL when no sitemap exists.
// Pages are processed sequentially in priority order; each page contributes
// at most MaxLinks unseen same-host links, and nothing deeper than MaxDepth
// is followed.
func (c *Crawler) walk(ctx context.Context, source *chatbot.Source) (*Result, error) {
	seedURL, err := url.Parse(source.URL)
	if err != nil {
		return nil, chatbot.Errorf(chatbot.EINVALID, "invalid source URL %q", source.URL)
	}

	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	maxLinks := c.MaxLinks
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinks
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(chatbot.DiscoveredLink{
		URL:      source.URL,
		Priority: chatbot.PriorityNavigation,
		Depth:    0,
	})

	var result Result
	staticOnly := true

	for {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		res := c.processPage(ctx, link.URL, link.Depth < maxDepth)
		if res.err != nil {
			c.logger().Warn("page failed", "url", link.URL, "error", res.err)
			result.Failed++
			continue
		}
		if !res.static {
			staticOnly = false
		}

		queued := 0
		for _, discovered := range res.discovered {
			if queued >= maxLinks {
				break
			}
			parsed, err := url.Parse(discovered.URL)
			if err != nil || parsed.Host != seedURL.Host {
				continue
			}
			discovered.Depth = link.Depth + 1
			if frontier.Push(discovered) {
				queued++
			}
		}

		if err := c.savePage(ctx, source, &res, &result); err != nil {
			c.logger().Warn("page save failed", "url", link.URL, "error", err)
			result.Failed++
		}
	}

	c.finish(source, &result, staticOnly)
	return &result, nil
}
