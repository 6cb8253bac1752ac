package chatbot

import "context"

// KnowledgeService manages the set of URLs whose content backs the agent's
// answers. It is the narrow interface the chat session sees; crawling,
// chunking, embedding, and storage are implementation details behind it.
type KnowledgeService interface {
	// AddURL crawls and indexes the content behind url.
	// Returns the authoritative list of loaded URLs after the add.
	// Returns EINVALID if the URL is empty or not http(s).
	AddURL(ctx context.Context, url string) ([]string, error)

	// LoadedURLs returns the URLs currently indexed, in load order.
	LoadedURLs(ctx context.Context) ([]string, error)

	// RemoveURL removes all indexed content for url.
	// Returns the authoritative list of remaining URLs.
	// Returns ENOTFOUND if the URL was never loaded.
	RemoveURL(ctx context.Context, url string) ([]string, error)

	// Clear removes all indexed content and forgets all loaded URLs.
	Clear(ctx context.Context) error
}
