package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// DefaultAddr is the address the server binds when none is configured.
const DefaultAddr = ":8000"

// ShutdownTimeout is how long in-flight requests get to finish on Close.
const ShutdownTimeout = 5 * time.Second

// Server exposes the knowledge base and the agent over a REST API.
//
// Endpoints:
//
//	GET  /health               liveness probe
//	GET  /loaded-urls          list loaded URLs
//	GET  /knowledge-base       loaded sources with stats
//	POST /initialize           load a URL into the knowledge base
//	POST /chat                 answer a message given prior history
//	POST /remove-url           remove one URL
//	POST /clear-knowledge-base remove everything
//
// Errors are returned as non-2xx responses with a {"detail": ...} body.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	Addr string

	Knowledge chatbot.KnowledgeService
	Agent     chatbot.Agent
	Sources   chatbot.SourceService
	Logger    *slog.Logger
}

// NewServer creates a Server with all routes registered.
func NewServer() *Server {
	s := &Server{
		mux:  http.NewServeMux(),
		Addr: DefaultAddr,
	}

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /loaded-urls", s.handleLoadedURLs)
	s.mux.HandleFunc("GET /knowledge-base", s.handleKnowledgeBase)
	s.mux.HandleFunc("POST /initialize", s.handleInitialize)
	s.mux.HandleFunc("POST /chat", s.handleChat)
	s.mux.HandleFunc("POST /remove-url", s.handleRemoveURL)
	s.mux.HandleFunc("POST /clear-knowledge-base", s.handleClear)

	s.server = &http.Server{Handler: s}
	return s
}

// ServeHTTP dispatches requests through the CORS middleware to the mux.
// Exported so tests can drive the server with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The browser client may be served from any origin.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

// Open starts listening on s.Addr. It returns once the listener is bound;
// serving happens on a background goroutine.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger().Error("http server failed", "error", err)
		}
	}()

	s.logger().Info("http server listening", "addr", ln.Addr().String())
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	loaded := false
	if s.Knowledge != nil {
		if urls, err := s.Knowledge.LoadedURLs(r.Context()); err == nil {
			loaded = len(urls) > 0
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", KnowledgeLoaded: loaded})
}

func (s *Server) handleLoadedURLs(w http.ResponseWriter, r *http.Request) {
	urls, err := s.Knowledge.LoadedURLs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loadedURLsResponse{URLs: urls, Total: len(urls)})
}

func (s *Server) handleKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	sources, err := s.Sources.FindSources(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	entries := make([]knowledgeBaseEntry, len(sources))
	for i, source := range sources {
		entries[i] = knowledgeBaseEntry{
			URL:       source.URL,
			Title:     source.Title,
			Documents: source.Documents,
			LoadedAt:  source.LoadedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, knowledgeBaseResponse{Sources: entries})
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, chatbot.Errorf(chatbot.EINVALID, "invalid request body"))
		return
	}

	urls, err := s.Knowledge.AddURL(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, initializeResponse{Success: true, LoadedURLs: urls})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, chatbot.Errorf(chatbot.EINVALID, "invalid request body"))
		return
	}
	if req.Message == "" {
		s.writeError(w, r, chatbot.Errorf(chatbot.EINVALID, "message required"))
		return
	}
	for i := range req.History {
		if err := req.History[i].Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	answer, err := s.Agent.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: answer})
}

func (s *Server) handleRemoveURL(w http.ResponseWriter, r *http.Request) {
	var req removeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, chatbot.Errorf(chatbot.EINVALID, "invalid request body"))
		return
	}

	urls, err := s.Knowledge.RemoveURL(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removeURLResponse{Success: true, RemainingURLs: urls})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.Knowledge.Clear(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clearResponse{Success: true})
}

// Request and response bodies. Field names are part of the wire format.
type healthResponse struct {
	Status          string `json:"status"`
	KnowledgeLoaded bool   `json:"knowledge_loaded"`
}

type initializeRequest struct {
	URL string `json:"url"`
}

type initializeResponse struct {
	Success    bool     `json:"success"`
	LoadedURLs []string `json:"loaded_urls"`
}

type loadedURLsResponse struct {
	URLs  []string `json:"urls"`
	Total int      `json:"total"`
}

type chatRequest struct {
	Message string            `json:"message"`
	History []chatbot.Message `json:"history"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type removeURLRequest struct {
	URL string `json:"url"`
}

type removeURLResponse struct {
	Success       bool     `json:"success"`
	RemainingURLs []string `json:"remaining_urls"`
}

type clearResponse struct {
	Success bool `json:"success"`
}

type knowledgeBaseEntry struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Documents int    `json:"documents"`
	LoadedAt  string `json:"loaded_at"`
}

type knowledgeBaseResponse struct {
	Sources []knowledgeBaseEntry `json:"sources"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// writeError maps an application error to an HTTP status and {"detail"} body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := chatbot.ErrorCode(err)
	status := errorStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger().Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Detail: chatbot.ErrorMessage(err)})
}

// errorStatus maps application error codes to HTTP status codes.
func errorStatus(code string) int {
	switch code {
	case chatbot.EINVALID:
		return http.StatusBadRequest
	case chatbot.ENOTFOUND:
		return http.StatusNotFound
	case chatbot.ECONFLICT:
		return http.StatusConflict
	case chatbot.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
