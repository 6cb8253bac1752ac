package chatbot

// LinkPriority represents crawl priority (higher = more important).
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PriorityFallback   LinkPriority = 10
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
)

// DiscoveredLink represents a URL found during crawling, with metadata used
// for prioritization and depth limiting.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Depth    int
}

// LinkSelector extracts same-host links from HTML for recursive crawling.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns discovered links.
	// The baseURL is used to resolve relative URLs; links pointing to a
	// different host are dropped.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}
