package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/B-Manish/web-scraper-chatbot/fs"
	"github.com/B-Manish/web-scraper-chatbot/session"
)

// The REPL doubles as the session's confirmer and notifier: destructive
// actions prompt inline and alerts print to the same screen.
var _ session.Confirmer = (*REPL)(nil)
var _ session.Notifier = (*REPL)(nil)

// REPL drives an interactive chat session over a terminal: a URL-entry
// phase, then a chat phase with slash commands.
type REPL struct {
	Session     *session.Session
	Voice       *session.Voice
	Transcripts *fs.TranscriptWriter

	scanner    *bufio.Scanner
	out        io.Writer
	lastAnswer string
}

// NewREPL creates a REPL reading from stdin and writing to stdout. Session
// and Voice must be set before Run.
func NewREPL(stdin io.Reader, stdout io.Writer, transcripts *fs.TranscriptWriter) *REPL {
	return &REPL{
		Transcripts: transcripts,
		scanner:     bufio.NewScanner(stdin),
		out:         stdout,
	}
}

// Run executes the session until the user quits or input ends.
func (r *REPL) Run(ctx context.Context, urls []string) error {
	fmt.Fprintln(r.out, "Web scraper chatbot. Type /help for commands.")

	if !r.loadPhase(ctx, urls) {
		return nil
	}
	r.printGreeting()
	return r.chatPhase(ctx)
}

// loadPhase collects URLs until the session reaches the chat phase.
// Returns false when input ends first.
func (r *REPL) loadPhase(ctx context.Context, initial []string) bool {
	if len(initial) > 0 && r.loadURLs(ctx, initial) {
		return true
	}

	fmt.Fprintln(r.out, "Enter website URLs to load (space separated), or /skip to chat without one.")
	for {
		fmt.Fprint(r.out, "url> ")
		if !r.scanner.Scan() {
			return false
		}
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if line == "/skip" {
			r.Session.Skip()
			return true
		}
		if r.loadURLs(ctx, strings.Fields(line)) {
			return true
		}
	}
}

func (r *REPL) loadURLs(ctx context.Context, urls []string) bool {
	fmt.Fprintln(r.out, "Loading, this can take a minute...")
	result := r.Session.LoadKnowledgeBase(ctx, urls)
	if result == nil {
		return r.Session.Phase() == session.Ready
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(r.out, "Could not load %s: %s\n", failure.URL, failure.Detail)
	}
	return result.Ready
}

func (r *REPL) chatPhase(ctx context.Context) error {
	for {
		fmt.Fprint(r.out, "> ")
		if !r.scanner.Scan() {
			return r.scanner.Err()
		}
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := r.command(ctx, line); quit {
				return nil
			}
			continue
		}
		if answer, ok := r.Session.Send(ctx, line); ok {
			fmt.Fprintln(r.out, answer)
			r.lastAnswer = answer
		}
	}
}

// command dispatches one slash command. Returns true to quit.
func (r *REPL) command(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Fprint(r.out, helpText)

	case "/urls":
		urls := r.Session.URLs()
		if len(urls) == 0 {
			fmt.Fprintln(r.out, "No websites loaded.")
			break
		}
		for _, u := range urls {
			fmt.Fprintln(r.out, u)
		}

	case "/add":
		before := len(r.Session.Transcript())
		if err := r.Session.AddURL(ctx, arg); err != nil {
			fmt.Fprintf(r.out, "Could not add %s: %s\n", arg, chatbot.ErrorMessage(err))
			break
		}
		r.printNewMessages(before)

	case "/remove":
		before := len(r.Session.Transcript())
		r.Session.RemoveURL(ctx, arg)
		r.printNewMessages(before)

	case "/clear":
		before := len(r.Session.Transcript())
		r.Session.ClearKnowledgeBase(ctx)
		r.printNewMessages(before)

	case "/save":
		path, err := r.Transcripts.Save(r.Session.Transcript(), r.Session.URLs())
		if err != nil {
			fmt.Fprintf(r.out, "Could not save transcript: %s\n", chatbot.ErrorMessage(err))
			break
		}
		fmt.Fprintf(r.out, "Transcript saved to %s\n", path)

	case "/listen":
		r.listen(ctx)

	case "/say":
		if !r.Voice.PlaybackAvailable() {
			fmt.Fprintln(r.out, "Voice playback is not available on this system.")
			break
		}
		if r.lastAnswer == "" {
			fmt.Fprintln(r.out, "Nothing to read yet.")
			break
		}
		if err := r.Voice.Speak(ctx, r.lastAnswer); err != nil {
			fmt.Fprintf(r.out, "Could not speak: %s\n", chatbot.ErrorMessage(err))
		}

	default:
		fmt.Fprintf(r.out, "Unknown command %s. Type /help for commands.\n", name)
	}
	return false
}

// listen captures a spoken question and sends it as a chat turn. The next
// Enter press ends capture.
func (r *REPL) listen(ctx context.Context) {
	if !r.Voice.CaptureAvailable() {
		fmt.Fprintln(r.out, "Voice capture is not available on this system.")
		return
	}
	if err := r.Voice.StartCapture(ctx); err != nil {
		fmt.Fprintf(r.out, "Could not start listening: %s\n", chatbot.ErrorMessage(err))
		return
	}

	fmt.Fprintln(r.out, "Listening... press Enter to send.")
	if !r.scanner.Scan() {
		_ = r.Voice.StopToInput(ctx)
		return
	}

	answer, ok := r.Voice.StopAndSend(ctx)
	if !ok {
		fmt.Fprintln(r.out, "I didn't catch that.")
		return
	}
	fmt.Fprintln(r.out, answer)
	r.lastAnswer = answer
}

// printGreeting prints the assistant's opening message.
func (r *REPL) printGreeting() {
	if transcript := r.Session.Transcript(); len(transcript) > 0 {
		fmt.Fprintln(r.out, transcript[0].Content)
	}
}

// printNewMessages prints assistant messages appended since the given
// transcript length, such as add/remove/clear confirmations.
func (r *REPL) printNewMessages(before int) {
	transcript := r.Session.Transcript()
	for _, msg := range transcript[before:] {
		if msg.Role == chatbot.RoleAssistant {
			fmt.Fprintln(r.out, msg.Content)
		}
	}
}

// Confirm prompts for a destructive action on the terminal.
func (r *REPL) Confirm(prompt string) bool {
	fmt.Fprintf(r.out, "%s [y/N] ", prompt)
	if !r.scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(r.scanner.Text()))
	return answer == "y" || answer == "yes"
}

// Alert prints a warning that does not belong in the transcript.
func (r *REPL) Alert(message string) {
	fmt.Fprintf(r.out, "! %s\n", message)
}

const helpText = `Commands:
  /add <url>     Load another website into the knowledge base
  /remove <url>  Remove a website from the knowledge base
  /clear         Clear the entire knowledge base
  /urls          List loaded websites
  /save          Save the conversation to a markdown file
  /listen        Ask a question by voice (press Enter to send)
  /say           Read the last answer aloud
  /quit          Exit
`
