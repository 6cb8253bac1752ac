// Package session implements the client-side conversation state machine:
// initialization, the message transcript, the loaded-URL cache, per-operation
// pending guards, and voice capture/playback coordination. It mediates every
// call to the knowledge base and the agent and folds results and failures
// back into user-visible state.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Phase is the session's initialization state. The transition
// Uninitialized -> Ready is one-way for the life of a session.
type Phase int

const (
	Uninitialized Phase = iota
	Ready
)

// Operation classes guarded by pending flags. Each class is non-reentrant:
// a duplicate submission while one is in flight is ignored, but different
// classes may be in flight concurrently.
type opClass int

const (
	opLoad opClass = iota
	opChat
	opAddURL
	opRemoveURL
	opClear
)

// Confirmer asks the user to approve a destructive action before it runs.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier surfaces blocking alerts that do not belong in the transcript.
type Notifier interface {
	Alert(message string)
}

// URLFailure records one URL that could not be loaded.
type URLFailure struct {
	URL    string
	Detail string
}

// LoadResult reports the outcome of a multi-URL load.
type LoadResult struct {
	// Loaded is the deduplicated set of URLs now in the knowledge base.
	Loaded []string

	// Failures lists the URLs that could not be loaded, in submission order.
	Failures []URLFailure

	// Ready reports whether the session transitioned (or already was)
	// to the chat phase.
	Ready bool
}

// Session is the conversation state machine. All methods are safe for
// concurrent use; external service calls happen outside the state lock so a
// slow load never blocks a chat turn.
type Session struct {
	knowledge chatbot.KnowledgeService
	agent     chatbot.Agent
	confirmer Confirmer
	notifier  Notifier
	logger    *slog.Logger

	mu         sync.Mutex
	phase      Phase
	transcript []chatbot.Message
	greeted    bool // transcript[0] is the local-only greeting
	urls       []string
	pending    map[opClass]bool
}

// New creates a Session in the Uninitialized phase.
// The confirmer and notifier may be nil; confirmations then default to
// "yes" and alerts are logged.
func New(knowledge chatbot.KnowledgeService, agent chatbot.Agent, confirmer Confirmer, notifier Notifier, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		knowledge: knowledge,
		agent:     agent,
		confirmer: confirmer,
		notifier:  notifier,
		logger:    logger,
		pending:   make(map[opClass]bool),
	}
}

// Phase returns the current initialization phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Transcript returns a copy of the conversation so far, greeting included.
func (s *Session) Transcript() []chatbot.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chatbot.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// URLs returns a copy of the cached loaded-URL set, in load order.
func (s *Session) URLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.urls))
	copy(out, s.urls)
	return out
}

// begin marks an operation class pending. It reports false when the class
// already has a request in flight, in which case the caller must no-op.
func (s *Session) begin(class opClass) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[class] {
		return false
	}
	s.pending[class] = true
	return true
}

// end clears a pending flag. Always deferred so it runs on every exit path.
func (s *Session) end(class opClass) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[class] = false
}

// LoadKnowledgeBase submits each non-empty trimmed URL to the knowledge base
// sequentially. One failing URL does not abort the others. If at least one
// succeeds the session transitions to Ready with a fresh greeting naming the
// sources; if all fail it stays Uninitialized. A load submitted while
// another is in flight, or after the session is already Ready, returns nil.
func (s *Session) LoadKnowledgeBase(ctx context.Context, rawURLs []string) *LoadResult {
	if s.Phase() == Ready {
		return nil
	}
	if !s.begin(opLoad) {
		return nil
	}
	defer s.end(opLoad)

	var urls []string
	for _, u := range rawURLs {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}

	result := &LoadResult{}
	var authoritative []string
	for _, u := range urls {
		loaded, err := s.knowledge.AddURL(ctx, u)
		if err != nil {
			s.logger.Warn("url load failed", "url", u, "error", err)
			result.Failures = append(result.Failures, URLFailure{URL: u, Detail: chatbot.ErrorMessage(err)})
			continue
		}
		authoritative = mergeURLs(authoritative, loaded)
	}

	if len(authoritative) == 0 {
		// Nothing loaded; no transition.
		s.mu.Lock()
		result.Ready = s.phase == Ready
		s.mu.Unlock()
		return result
	}

	s.mu.Lock()
	s.urls = mergeURLs(s.urls, authoritative)
	s.phase = Ready
	s.resetTranscriptLocked(loadedGreeting(s.urls))
	result.Loaded = make([]string, len(s.urls))
	copy(result.Loaded, s.urls)
	result.Ready = true
	s.mu.Unlock()

	return result
}

// Skip transitions to Ready without loading anything: empty URL set,
// generic greeting, no external call. A no-op when already Ready or while a
// load is in flight.
func (s *Session) Skip() bool {
	if !s.begin(opLoad) {
		return false
	}
	defer s.end(opLoad)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Ready {
		return false
	}
	s.phase = Ready
	s.resetTranscriptLocked(skipGreeting)
	return true
}

// Send runs one chat turn. The user message is appended to the transcript
// before the call (optimistic append); the history sent to the agent is the
// prior turns only, excluding the greeting and the message itself. On
// failure a synthesized error message is appended instead of an answer, so
// the transcript always grows by exactly two. Returns the assistant text and
// whether a turn actually ran (empty input and duplicate sends no-op).
func (s *Session) Send(ctx context.Context, text string) (string, bool) {
	message := strings.TrimSpace(text)
	if message == "" {
		return "", false
	}
	if !s.begin(opChat) {
		return "", false
	}
	defer s.end(opChat)

	s.mu.Lock()
	history := s.historyLocked()
	s.transcript = append(s.transcript, chatbot.Message{Role: chatbot.RoleUser, Content: message})
	s.mu.Unlock()

	answer, err := s.agent.Chat(ctx, message, history)
	if err != nil {
		s.logger.Warn("chat turn failed", "error", err)
		answer = fmt.Sprintf("Sorry, I encountered an error: %s", chatbot.ErrorMessage(err))
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, chatbot.Message{Role: chatbot.RoleAssistant, Content: answer})
	s.mu.Unlock()

	return answer, true
}

// AddURL loads one more URL into the knowledge base after initialization.
// On success the cached URL set is replaced with the service's authoritative
// list and a confirmation message is appended to the transcript. The error,
// if any, is returned for inline display rather than alerted or appended.
func (s *Session) AddURL(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return chatbot.Errorf(chatbot.EINVALID, "URL required")
	}
	if !s.begin(opAddURL) {
		return nil
	}
	defer s.end(opAddURL)

	loaded, err := s.knowledge.AddURL(ctx, url)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.urls = mergeURLs(nil, loaded)
	s.transcript = append(s.transcript, chatbot.Message{
		Role:    chatbot.RoleAssistant,
		Content: fmt.Sprintf("I've loaded content from %s. Ask me anything about it!", url),
	})
	s.mu.Unlock()
	return nil
}

// RemoveURL removes one URL after explicit user confirmation. On success the
// cached set is replaced with the authoritative remaining list and a
// confirmation message is appended; on failure a blocking alert is shown
// instead of a transcript entry.
func (s *Session) RemoveURL(ctx context.Context, url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	if !s.confirm(fmt.Sprintf("Remove %s from the knowledge base?", url)) {
		return
	}
	if !s.begin(opRemoveURL) {
		return
	}
	defer s.end(opRemoveURL)

	remaining, err := s.knowledge.RemoveURL(ctx, url)
	if err != nil {
		s.alert(fmt.Sprintf("Failed to remove %s: %s", url, chatbot.ErrorMessage(err)))
		return
	}

	s.mu.Lock()
	s.urls = mergeURLs(nil, remaining)
	s.transcript = append(s.transcript, chatbot.Message{
		Role:    chatbot.RoleAssistant,
		Content: fmt.Sprintf("I've removed %s from my knowledge base.", url),
	})
	s.mu.Unlock()
}

// ClearKnowledgeBase removes everything after explicit user confirmation,
// following the same confirm-call-replace pattern as RemoveURL.
func (s *Session) ClearKnowledgeBase(ctx context.Context) {
	if !s.confirm("Clear the entire knowledge base?") {
		return
	}
	if !s.begin(opClear) {
		return
	}
	defer s.end(opClear)

	if err := s.knowledge.Clear(ctx); err != nil {
		s.alert(fmt.Sprintf("Failed to clear the knowledge base: %s", chatbot.ErrorMessage(err)))
		return
	}

	s.mu.Lock()
	s.urls = nil
	s.transcript = append(s.transcript, chatbot.Message{
		Role:    chatbot.RoleAssistant,
		Content: "I've cleared my knowledge base. Load a new website anytime.",
	})
	s.mu.Unlock()
}

// historyLocked builds the agent history payload: the transcript minus the
// local-only greeting. Callers must hold s.mu.
func (s *Session) historyLocked() []chatbot.Message {
	transcript := s.transcript
	if s.greeted && len(transcript) > 0 {
		transcript = transcript[1:]
	}
	history := make([]chatbot.Message, len(transcript))
	copy(history, transcript)
	return history
}

// resetTranscriptLocked replaces the transcript with a fresh greeting.
// Callers must hold s.mu.
func (s *Session) resetTranscriptLocked(greeting string) {
	s.transcript = []chatbot.Message{{Role: chatbot.RoleAssistant, Content: greeting}}
	s.greeted = true
}

func (s *Session) confirm(prompt string) bool {
	if s.confirmer == nil {
		return true
	}
	return s.confirmer.Confirm(prompt)
}

func (s *Session) alert(message string) {
	if s.notifier == nil {
		s.logger.Error("alert", "message", message)
		return
	}
	s.notifier.Alert(message)
}

const skipGreeting = "Hello! No website is loaded yet. Ask me anything, or load one whenever you like."

func loadedGreeting(urls []string) string {
	switch len(urls) {
	case 0:
		return skipGreeting
	case 1:
		return fmt.Sprintf("Hello! I've loaded content from %s. Ask me anything about it!", urls[0])
	default:
		return fmt.Sprintf("Hello! I've loaded content from %s. Ask me anything about them!", strings.Join(urls, ", "))
	}
}

// mergeURLs appends the URLs from add to base, preserving order and
// dropping duplicates.
func mergeURLs(base []string, add []string) []string {
	seen := make(map[string]bool, len(base)+len(add))
	out := make([]string, 0, len(base)+len(add))
	for _, u := range base {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	for _, u := range add {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}
