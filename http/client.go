package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// DefaultBaseURL is where the client looks for the server when no base URL
// is configured.
const DefaultBaseURL = "http://localhost:8000"

// Loading a URL can take a while (crawl + embed), so the client timeout is
// generous compared to a normal API call.
const DefaultClientTimeout = 5 * time.Minute

// Client talks to the REST server. It implements both the knowledge base
// service and the agent, so the terminal session works against the same
// interfaces regardless of transport.
var (
	_ chatbot.KnowledgeService = (*Client)(nil)
	_ chatbot.Agent            = (*Client)(nil)
)

// Client is an HTTP client for the chatbot REST API.
type Client struct {
	baseURL string
	client  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a Client for the API at baseURL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health reports whether the server is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return chatbot.Errorf(chatbot.EUNAVAILABLE, "server unhealthy: %s", out.Status)
	}
	return nil
}

// AddURL loads a URL into the knowledge base.
func (c *Client) AddURL(ctx context.Context, url string) ([]string, error) {
	var out initializeResponse
	if err := c.post(ctx, "/initialize", initializeRequest{URL: url}, &out); err != nil {
		return nil, err
	}
	return out.LoadedURLs, nil
}

// LoadedURLs returns the URLs currently loaded on the server.
func (c *Client) LoadedURLs(ctx context.Context) ([]string, error) {
	var out loadedURLsResponse
	if err := c.get(ctx, "/loaded-urls", &out); err != nil {
		return nil, err
	}
	return out.URLs, nil
}

// RemoveURL removes a URL from the knowledge base.
func (c *Client) RemoveURL(ctx context.Context, url string) ([]string, error) {
	var out removeURLResponse
	if err := c.post(ctx, "/remove-url", removeURLRequest{URL: url}, &out); err != nil {
		return nil, err
	}
	return out.RemainingURLs, nil
}

// Clear removes all content from the knowledge base.
func (c *Client) Clear(ctx context.Context) error {
	var out clearResponse
	return c.post(ctx, "/clear-knowledge-base", struct{}{}, &out)
}

// Chat sends a message with prior history and returns the agent's answer.
func (c *Client) Chat(ctx context.Context, message string, history []chatbot.Message) (string, error) {
	if history == nil {
		history = []chatbot.Message{}
	}
	var out chatResponse
	if err := c.post(ctx, "/chat", chatRequest{Message: message, History: history}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return chatbot.Errorf(chatbot.EUNAVAILABLE, "cannot reach server at %s: %v", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError converts a non-2xx response into an application error,
// reversing the server's status mapping.
func decodeError(resp *http.Response) error {
	detail := fmt.Sprintf("HTTP %d", resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Detail != "" {
			detail = e.Detail
		}
	}
	return chatbot.Errorf(statusErrorCode(resp.StatusCode), "%s", detail)
}

// statusErrorCode maps HTTP status codes back to application error codes.
func statusErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return chatbot.EINVALID
	case http.StatusNotFound:
		return chatbot.ENOTFOUND
	case http.StatusConflict:
		return chatbot.ECONFLICT
	case http.StatusServiceUnavailable:
		return chatbot.EUNAVAILABLE
	default:
		return chatbot.EINTERNAL
	}
}
