package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/B-Manish/web-scraper-chatbot/fs"
	chatbothttp "github.com/B-Manish/web-scraper-chatbot/http"
	"github.com/B-Manish/web-scraper-chatbot/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the terminal client program.
type Main struct {
	// Input stream for the interactive session. Defaults to os.Stdin.
	Stdin io.Reader

	// Backends. Left nil, both are served by an HTTP client talking to
	// the chatbotd server; tests inject mocks here.
	Knowledge chatbot.KnowledgeService
	Agent     chatbot.Agent

	// Voice adapters. Nil adapters disable the voice commands without
	// affecting the rest of the session.
	Recognizer  chatbot.Recognizer
	Synthesizer chatbot.Synthesizer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run parses arguments, connects to the server, and drives the interactive
// session until the user quits or input ends.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("chatbot"),
		kong.Description("Terminal client for the web scraper chatbot."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	knowledge, agent := m.Knowledge, m.Agent
	if knowledge == nil || agent == nil {
		client := chatbothttp.NewClient(cli.Server)
		if err := client.Health(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: start the server with 'chatbotd', or point --server at a running instance")
			return fmt.Errorf("cannot reach chatbot server at %q: %w", cli.Server, err)
		}
		if knowledge == nil {
			knowledge = client
		}
		if agent == nil {
			agent = client
		}
	}

	// The session logs through slog; only warnings belong on a chat screen.
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	repl := NewREPL(m.Stdin, stdout, fs.NewTranscriptWriter(cli.Transcripts))
	sess := session.New(knowledge, agent, repl, repl, logger)
	repl.Session = sess
	repl.Voice = session.NewVoice(sess, m.Recognizer, m.Synthesizer, repl)

	return repl.Run(ctx, cli.URLs)
}
