// Package gemini provides Gemini-backed implementations of the agent,
// embedder, and token counter interfaces using google.golang.org/genai.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// retrievalLimit is the number of chunks retrieved per question.
const retrievalLimit = 6

// Ensure Agent implements chatbot.Agent at compile time.
var _ chatbot.Agent = (*Agent)(nil)

// Agent implements chatbot.Agent using Google Gemini, grounding answers in
// chunks retrieved from the knowledge base. When the knowledge base is empty
// the agent answers from the model alone, matching the behavior of chatting
// before any URL is loaded.
type Agent struct {
	client *genai.Client
	search chatbot.SearchService
	model  string
}

// NewAgent creates a new Agent.
func NewAgent(client *genai.Client, search chatbot.SearchService, model string) *Agent {
	if model == "" {
		model = DefaultModel
	}
	return &Agent{client: client, search: search, model: model}
}

// Chat answers a user message given prior turns.
func (a *Agent) Chat(ctx context.Context, message string, history []chatbot.Message) (string, error) {
	if message == "" {
		return "", chatbot.Errorf(chatbot.EINVALID, "message required")
	}

	results, err := a.search.Search(ctx, message, chatbot.SearchOptions{Limit: retrievalLimit})
	if err != nil {
		return "", err
	}

	contents := BuildContents(history, BuildUserPrompt(results, message))
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", chatbot.Errorf(chatbot.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about website content. " +
					"When source excerpts are provided, answer based on them and say so when " +
					"the answer is not in the excerpts. Without excerpts, answer from general knowledge.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildContents converts prior turns plus the current prompt into Gemini
// contents. Assistant turns map to the "model" role.
func BuildContents(history []chatbot.Message, prompt string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		role := genai.RoleUser
		if msg.Role == chatbot.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt}},
	})
	return contents
}

// BuildUserPrompt builds the user prompt containing retrieved source
// excerpts and the question. With no results it returns the question alone.
func BuildUserPrompt(results []chatbot.SearchResult, question string) string {
	if len(results) == 0 {
		return question
	}

	var sb strings.Builder
	sb.WriteString("<sources>\n")
	for i, r := range results {
		title := r.Chunk.Metadata.Title
		if title == "" {
			title = r.Chunk.Metadata.PageURL
		}
		sb.WriteString("<source>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<url>%s</url>\n", r.Chunk.Metadata.PageURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", r.Chunk.Content)
		sb.WriteString("</source>\n")
	}
	sb.WriteString("</sources>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
