// Package openai provides an OpenAI-backed implementation of chatbot.Agent.
// It is the alternative to the gemini agent, selected with the server's
// --agent flag.
package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/B-Manish/web-scraper-chatbot/gemini"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4.1"

// retrievalLimit is the number of chunks retrieved per question.
const retrievalLimit = 6

// systemPrompt mirrors the gemini agent's grounding instruction.
const systemPrompt = "You are a helpful assistant answering questions about website content. " +
	"When source excerpts are provided, answer based on them and say so when " +
	"the answer is not in the excerpts. Without excerpts, answer from general knowledge."

// Ensure Agent implements chatbot.Agent at compile time.
var _ chatbot.Agent = (*Agent)(nil)

// Agent implements chatbot.Agent using the OpenAI chat completions API,
// grounding answers in chunks retrieved from the knowledge base.
type Agent struct {
	client *openai.Client
	search chatbot.SearchService
	model  string
}

// NewAgent creates a new Agent.
func NewAgent(apiKey string, search chatbot.SearchService, model string) *Agent {
	if model == "" {
		model = DefaultModel
	}
	return &Agent{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		search: search,
		model:  model,
	}
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

	// Both agents share the same source-excerpt prompt format.
	prompt := gemini.BuildUserPrompt(results, message)

	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F(BuildMessages(history, prompt)),
		Model:    openai.F(a.model),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", chatbot.Errorf(chatbot.EINTERNAL, "openai returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// BuildMessages converts prior turns plus the current prompt into OpenAI
// chat messages, prefixed with the system prompt.
func BuildMessages(history []chatbot.Message, prompt string) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(systemPrompt))
	for _, msg := range history {
		if msg.Role == chatbot.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(msg.Content))
			continue
		}
		messages = append(messages, openai.UserMessage(msg.Content))
	}
	messages = append(messages, openai.UserMessage(prompt))
	return messages
}
