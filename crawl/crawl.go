// Package crawl orchestrates loading a website into the knowledge base.
// It coordinates sitemap discovery, fetching, content extraction, markdown
// conversion, chunking, embedding, and storage.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Crawl limits. Depth and per-page link counts keep a load interactive;
// the sitemap path is capped so huge sites don't stall the chat.
const (
	DefaultMaxDepth = 3
	DefaultMaxLinks = 2

	maxSitemapPages = 50

	// jsContentThreshold flags pages whose static HTML yields almost no
	// markdown, a sign the site renders its content with JavaScript.
	jsContentThreshold = 200
)

// Crawler loads the pages behind a source URL and indexes them.
type Crawler struct {
	Sitemaps    chatbot.SitemapService
	Browser     chatbot.Fetcher // preferred; may be nil when Chrome is unavailable
	Static      chatbot.Fetcher // plain HTTP fallback
	Extractors  []chatbot.Extractor
	Converter   chatbot.Converter
	Links       chatbot.LinkSelector
	RateLimiter chatbot.DomainLimiter
	Embedder    chatbot.Embedder
	Documents   chatbot.DocumentService
	Chunks      chatbot.ChunkService
	Tokens      chatbot.TokenCounter // optional; when set, Result.Tokens is populated
	Logger      *slog.Logger

	// MaxDepth and MaxLinks bound the recursive walk used when a site has
	// no sitemap. Zero values select the defaults.
	MaxDepth int
	MaxLinks int

	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of crawling one source.
type Result struct {
	Saved  int
	Failed int
	Chunks int
	Bytes  int
	Tokens int

	// Warning is set when the content looks JavaScript-rendered and only
	// the static fetcher was available.
	Warning string
}

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position   int
	url        string
	title      string
	markdown   string
	discovered []chatbot.DiscoveredLink
	static     bool
	err        error
}

// CrawlSource crawls all pages for a source and indexes them as documents
// and embedded chunks. Sitemap URLs are used when available; otherwise the
// crawler walks links recursively from the source URL.
func (c *Crawler) CrawlSource(ctx context.Context, source *chatbot.Source) (*Result, error) {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, source.URL)
	if err != nil {
		c.logger().Warn("sitemap discovery failed", "url", source.URL, "error", err)
		urls = nil
	}

	if len(urls) == 0 {
		return c.walk(ctx, source)
	}
	if len(urls) > maxSitemapPages {
		urls = urls[:maxSitemapPages]
	}
	return c.crawlSitemapURLs(ctx, source, urls)
}

// crawlSitemapURLs fetches a known URL list concurrently.
func (c *Crawler) crawlSitemapURLs(ctx context.Context, source *chatbot.Source, urls []string) (*Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan pageResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, pageURL := range urls {
			i, pageURL := i, pageURL
			g.Go(func() error {
				res := c.processPage(gctx, pageURL, false)
				res.position = i
				resultCh <- res
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(urls))
	for res := range resultCh {
		results[res.position] = res
	}

	var result Result
	staticOnly := true
	for _, res := range results {
		if res.err != nil {
			c.logger().Warn("page failed", "url", res.url, "error", res.err)
			result.Failed++
			continue
		}
		if !res.static {
			staticOnly = false
		}
		if err := c.savePage(ctx, source, &res, &result); err != nil {
			c.logger().Warn("page save failed", "url", res.url, "error", err)
			result.Failed++
		}
	}

	c.finish(source, &result, staticOnly)
	return &result, nil
}

// processPage fetches one page, extracts content, and converts to markdown.
// When extractLinks is set the page's same-host links are returned too.
func (c *Crawler) processPage(ctx context.Context, pageURL string, extractLinks bool) pageResult {
	res := pageResult{url: pageURL}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		res.err = err
		return res
	}
	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			res.err = err
			return res
		}
	}

	html, static, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		res.err = err
		return res
	}
	res.static = static

	if extractLinks && c.Links != nil {
		if links, err := c.Links.ExtractLinks(html, pageURL); err == nil {
			res.discovered = links
		}
	}

	extracted, err := c.extractContent(html)
	if err != nil {
		res.err = err
		return res
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		res.err = err
		return res
	}
	if strings.TrimSpace(markdown) == "" {
		res.err = chatbot.Errorf(chatbot.EINVALID, "no content could be extracted from %s", pageURL)
		return res
	}

	res.title = extracted.Title
	res.markdown = markdown
	return res
}

// fetchPage tries the browser fetcher first and falls back to plain HTTP.
// The bool result reports whether the static fetcher served the page.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (string, bool, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	if c.Browser != nil {
		html, err := FetchWithRetryDelays(ctx, pageURL, c.Browser.Fetch, delays)
		if err == nil {
			return html, false, nil
		}
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		c.logger().Warn("browser fetch failed, falling back to http", "url", pageURL, "error", err)
	}

	if c.Static == nil {
		return "", false, chatbot.Errorf(chatbot.EUNAVAILABLE, "no fetcher available for %s", pageURL)
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, c.Static.Fetch, delays)
	return html, true, err
}

// extractContent runs the extractor chain, returning the first result with
// non-empty content.
func (c *Crawler) extractContent(html string) (*chatbot.ExtractResult, error) {
	var lastErr error
	for _, extractor := range c.Extractors {
		extracted, err := extractor.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if strings.TrimSpace(extracted.ContentHTML) != "" {
			return extracted, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, chatbot.Errorf(chatbot.EINVALID, "no content could be extracted")
}

// savePage stores one processed page as a document plus embedded chunks.
func (c *Crawler) savePage(ctx context.Context, source *chatbot.Source, res *pageResult, result *Result) error {
	doc := &chatbot.Document{
		SourceID: source.ID,
		PageURL:  res.url,
		Title:    res.title,
		Content:  res.markdown,
		Position: result.Saved,
	}
	if err := c.Documents.CreateDocument(ctx, doc); err != nil {
		return err
	}

	sections := SplitMarkdown(res.markdown)
	if len(sections) == 0 {
		result.Saved++
		result.Bytes += len(res.markdown)
		return nil
	}

	texts := make([]string, len(sections))
	for i, section := range sections {
		texts[i] = section.Content
	}
	embeddings, err := c.Embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}
	if len(embeddings) != len(sections) {
		return chatbot.Errorf(chatbot.EINTERNAL, "embedder returned %d vectors for %d chunks", len(embeddings), len(sections))
	}

	chunks := make([]*chatbot.Chunk, len(sections))
	for i, section := range sections {
		chunks[i] = &chatbot.Chunk{
			DocumentID: doc.ID,
			SourceID:   source.ID,
			Content:    section.Content,
			Embedding:  embeddings[i],
			Metadata: chatbot.ChunkMetadata{
				Headings: section.Headings,
				PageURL:  res.url,
				Title:    res.title,
			},
		}
	}
	if err := c.Chunks.CreateChunks(ctx, chunks); err != nil {
		return err
	}

	result.Saved++
	result.Chunks += len(chunks)
	result.Bytes += len(res.markdown)
	if c.Tokens != nil {
		if tokens, err := c.Tokens.CountTokens(ctx, res.markdown); err == nil {
			result.Tokens += tokens
		}
	}
	return nil
}

// finish fills in the crawl-level warning and logs a summary.
func (c *Crawler) finish(source *chatbot.Source, result *Result, staticOnly bool) {
	if staticOnly && result.Saved > 0 && result.Bytes < jsContentThreshold {
		result.Warning = fmt.Sprintf("%s appears to render its content with JavaScript; only partial content was indexed", source.URL)
	}
	c.logger().Info("crawl finished",
		"url", source.URL,
		"saved", result.Saved,
		"failed", result.Failed,
		"chunks", result.Chunks,
	)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
