package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/B-Manish/web-scraper-chatbot/crawl"
	"github.com/B-Manish/web-scraper-chatbot/gemini"
	"github.com/B-Manish/web-scraper-chatbot/goquery"
	"github.com/B-Manish/web-scraper-chatbot/htmltomarkdown"
	chatbothttp "github.com/B-Manish/web-scraper-chatbot/http"
	"github.com/B-Manish/web-scraper-chatbot/knowledge"
	"github.com/B-Manish/web-scraper-chatbot/openai"
	"github.com/B-Manish/web-scraper-chatbot/readability"
	"github.com/B-Manish/web-scraper-chatbot/rod"
	chatbotslog "github.com/B-Manish/web-scraper-chatbot/slog"
	"github.com/B-Manish/web-scraper-chatbot/sqlite"
	"github.com/B-Manish/web-scraper-chatbot/trafilatura"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the server program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// HTTP server serving the chat API.
	Server *chatbothttp.Server

	// Services for end-to-end testing.
	KnowledgeService chatbot.KnowledgeService
	SourceService    chatbot.SourceService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Server != nil {
		if err := m.Server.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run wires the services, starts the HTTP server, and blocks until the
// context is cancelled.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// A .env file is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("chatbotd"),
		kong.Description("Backend server for the web scraper chatbot."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CHATBOT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	sources := sqlite.NewSourceService(m.DB)
	documents := sqlite.NewDocumentService(m.DB)
	chunks := sqlite.NewChunkService(m.DB)
	m.SourceService = sources

	// The embedder must match the agent backend: vectors from different
	// providers are not comparable.
	var embedder chatbot.Embedder
	var agent chatbot.Agent
	var tokens chatbot.TokenCounter
	switch cli.Agent {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Get an API key at https://platform.openai.com/api-keys")
			return fmt.Errorf("OPENAI_API_KEY not set")
		}
		embedder = openai.NewEmbedder(apiKey, "")
		agent = openai.NewAgent(apiKey, sqlite.NewSearchService(chunks, embedder), cli.Model)
	default:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		embedder = gemini.NewEmbedder(client, "")
		agent = gemini.NewAgent(client, sqlite.NewSearchService(chunks, embedder), cli.Model)
		if tc, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
			tokens = tc
		}
	}

	// Browser-first fetching renders JavaScript sites; absence degrades to
	// static fetching with a warning surfaced to the client.
	var browser chatbot.Fetcher
	if !cli.NoBrowser {
		fetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Install Chrome or Chromium to crawl JavaScript-rendered sites")
			logger.Warn("headless browser unavailable, falling back to static fetching", "error", err)
		} else {
			defer fetcher.Close()
			browser = chatbotslog.NewLoggingFetcher(fetcher, logger)
		}
	}

	crawler := &crawl.Crawler{
		Sitemaps: chatbothttp.NewSitemapService(nil),
		Browser:  browser,
		Static:   chatbotslog.NewLoggingFetcher(chatbothttp.NewFetcher(), logger),
		Extractors: []chatbot.Extractor{
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
			goquery.NewExtractor(),
		},
		Converter:   htmltomarkdown.NewConverter(),
		Links:       goquery.NewSelector(),
		RateLimiter: crawl.NewDomainLimiter(1.0),
		Embedder:    embedder,
		Documents:   documents,
		Chunks:      chunks,
		Tokens:      tokens,
		Logger:      logger,
	}

	knowledgeSvc := &knowledge.Service{
		Crawler: crawler,
		Sources: sources,
		Logger:  logger,
	}
	m.KnowledgeService = knowledgeSvc

	m.Server = chatbothttp.NewServer()
	m.Server.Addr = cli.Addr
	m.Server.Knowledge = chatbotslog.NewLoggingKnowledgeService(knowledgeSvc, logger)
	m.Server.Agent = chatbotslog.NewLoggingAgent(agent, logger)
	m.Server.Sources = sources
	m.Server.Logger = logger

	if err := m.Server.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", cli.Addr, err)
	}
	logger.Info("server ready", "addr", cli.Addr, "agent", cli.Agent)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// tokenizerModel is used for token counting. The local tokenizer lags the
// serving models, so this stays on a model it supports.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("CHATBOT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "chatbot.db"
	}
	dir := filepath.Join(home, ".chatbot")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "chatbot.db")
}
