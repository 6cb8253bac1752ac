package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	chatbothttp "github.com/B-Manish/web-scraper-chatbot/http"
	"github.com/B-Manish/web-scraper-chatbot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires a Server with the given mocks behind httptest.
func newTestServer(knowledge chatbot.KnowledgeService, agent chatbot.Agent, sources chatbot.SourceService) *httptest.Server {
	s := chatbothttp.NewServer()
	s.Knowledge = knowledge
	s.Agent = agent
	s.Sources = sources
	return httptest.NewServer(s)
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	knowledge := &mock.KnowledgeService{
		LoadedURLsFn: func(_ context.Context) ([]string, error) {
			return []string{"https://docs.example/"}, nil
		},
	}
	srv := newTestServer(knowledge, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[struct {
		Status          string `json:"status"`
		KnowledgeLoaded bool   `json:"knowledge_loaded"`
	}](t, resp)
	assert.Equal(t, "ok", body.Status)
	assert.True(t, body.KnowledgeLoaded)
}

func TestServer_Initialize(t *testing.T) {
	t.Parallel()

	t.Run("loads URL and returns the list", func(t *testing.T) {
		t.Parallel()

		knowledge := &mock.KnowledgeService{
			AddURLFn: func(_ context.Context, url string) ([]string, error) {
				assert.Equal(t, "https://docs.example/", url)
				return []string{"https://docs.example/"}, nil
			},
		}
		srv := newTestServer(knowledge, nil, nil)
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/initialize", map[string]string{"url": "https://docs.example/"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[struct {
			Success    bool     `json:"success"`
			LoadedURLs []string `json:"loaded_urls"`
		}](t, resp)
		assert.True(t, body.Success)
		assert.Equal(t, []string{"https://docs.example/"}, body.LoadedURLs)
	})

	t.Run("maps EINVALID to 400 with detail", func(t *testing.T) {
		t.Parallel()

		knowledge := &mock.KnowledgeService{
			AddURLFn: func(_ context.Context, _ string) ([]string, error) {
				return nil, chatbot.Errorf(chatbot.EINVALID, "source URL required")
			},
		}
		srv := newTestServer(knowledge, nil, nil)
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/initialize", map[string]string{"url": ""})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody[struct {
			Detail string `json:"detail"`
		}](t, resp)
		assert.Equal(t, "source URL required", body.Detail)
	})
}

func TestServer_Chat(t *testing.T) {
	t.Parallel()

	t.Run("returns the agent answer", func(t *testing.T) {
		t.Parallel()

		agent := &mock.Agent{
			ChatFn: func(_ context.Context, message string, history []chatbot.Message) (string, error) {
				assert.Equal(t, "what is this?", message)
				assert.Len(t, history, 2)
				return "an answer", nil
			},
		}
		srv := newTestServer(nil, agent, nil)
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/chat", map[string]any{
			"message": "what is this?",
			"history": []map[string]string{
				{"role": "user", "content": "hi"},
				{"role": "assistant", "content": "hello"},
			},
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[struct {
			Response string `json:"response"`
		}](t, resp)
		assert.Equal(t, "an answer", body.Response)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(nil, &mock.Agent{}, nil)
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/chat", map[string]any{"message": ""})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects malformed history roles", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(nil, &mock.Agent{}, nil)
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/chat", map[string]any{
			"message": "hi",
			"history": []map[string]string{{"role": "system", "content": "x"}},
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("maps agent failure to 500", func(t *testing.T) {
		t.Parallel()

		agent := &mock.Agent{
			ChatFn: func(_ context.Context, _ string, _ []chatbot.Message) (string, error) {
				return "", chatbot.Errorf(chatbot.EINTERNAL, "model failure")
			},
		}
		srv := newTestServer(nil, agent, nil)
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/chat", map[string]any{"message": "hi"})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestServer_RemoveURL(t *testing.T) {
	t.Parallel()

	t.Run("removes and returns remaining", func(t *testing.T) {
		t.Parallel()

		knowledge := &mock.KnowledgeService{
			RemoveURLFn: func(_ context.Context, url string) ([]string, error) {
				assert.Equal(t, "https://a.example/", url)
				return []string{"https://b.example/"}, nil
			},
		}
		srv := newTestServer(knowledge, nil, nil)
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/remove-url", map[string]string{"url": "https://a.example/"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[struct {
			Success       bool     `json:"success"`
			RemainingURLs []string `json:"remaining_urls"`
		}](t, resp)
		assert.True(t, body.Success)
		assert.Equal(t, []string{"https://b.example/"}, body.RemainingURLs)
	})

	t.Run("maps ENOTFOUND to 404", func(t *testing.T) {
		t.Parallel()

		knowledge := &mock.KnowledgeService{
			RemoveURLFn: func(_ context.Context, _ string) ([]string, error) {
				return nil, chatbot.Errorf(chatbot.ENOTFOUND, "url not found")
			},
		}
		srv := newTestServer(knowledge, nil, nil)
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/remove-url", map[string]string{"url": "https://x.example/"})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_LoadedURLs(t *testing.T) {
	t.Parallel()

	knowledge := &mock.KnowledgeService{
		LoadedURLsFn: func(_ context.Context) ([]string, error) {
			return []string{"https://a.example/", "https://b.example/"}, nil
		},
	}
	srv := newTestServer(knowledge, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/loaded-urls")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[struct {
		URLs  []string `json:"urls"`
		Total int      `json:"total"`
	}](t, resp)
	assert.Equal(t, []string{"https://a.example/", "https://b.example/"}, body.URLs)
	assert.Equal(t, 2, body.Total)
}

func TestServer_Clear(t *testing.T) {
	t.Parallel()

	cleared := false
	knowledge := &mock.KnowledgeService{
		ClearFn: func(_ context.Context) error {
			cleared = true
			return nil
		},
	}
	srv := newTestServer(knowledge, nil, nil)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/clear-knowledge-base", struct{}{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, cleared)
}

func TestServer_KnowledgeBase(t *testing.T) {
	t.Parallel()

	sources := &mock.SourceService{
		FindSourcesFn: func(_ context.Context) ([]*chatbot.Source, error) {
			return []*chatbot.Source{
				{URL: "https://a.example/", Title: "A", Documents: 3},
			}, nil
		},
	}
	srv := newTestServer(nil, nil, sources)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/knowledge-base")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[struct {
		Sources []struct {
			URL       string `json:"url"`
			Title     string `json:"title"`
			Documents int    `json:"documents"`
		} `json:"sources"`
	}](t, resp)
	require.Len(t, body.Sources, 1)
	assert.Equal(t, "https://a.example/", body.Sources[0].URL)
	assert.Equal(t, 3, body.Sources[0].Documents)
}

func TestServer_CORS(t *testing.T) {
	t.Parallel()

	srv := newTestServer(nil, nil, nil)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/chat", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
