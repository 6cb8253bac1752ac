package fs_test

import (
	"os"
	"testing"
	"time"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/B-Manish/web-scraper-chatbot/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTranscript(t *testing.T) {
	t.Parallel()

	messages := []chatbot.Message{
		{Role: chatbot.RoleAssistant, Content: "Hello! Ask me anything."},
		{Role: chatbot.RoleUser, Content: "What is this site about?"},
		{Role: chatbot.RoleAssistant, Content: "It documents an API."},
	}
	savedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	out := fs.FormatTranscript(messages, []string{"https://docs.example/"}, savedAt)

	assert.Contains(t, out, "saved: 2026-03-14 09:30")
	assert.Contains(t, out, "sources: https://docs.example/")
	assert.Contains(t, out, "## You\n\nWhat is this site about?")
	assert.Contains(t, out, "## Assistant\n\nIt documents an API.")
}

func TestTranscriptWriter_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes a markdown file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewTranscriptWriter(dir)

		path, err := w.Save([]chatbot.Message{
			{Role: chatbot.RoleUser, Content: "hi"},
		}, nil)

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "## You\n\nhi")
	})

	t.Run("rejects empty transcript", func(t *testing.T) {
		t.Parallel()

		w := fs.NewTranscriptWriter(t.TempDir())

		_, err := w.Save(nil, nil)
		assert.Equal(t, chatbot.EINVALID, chatbot.ErrorCode(err))
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir() + "/nested/transcripts"
		w := fs.NewTranscriptWriter(dir)

		path, err := w.Save([]chatbot.Message{
			{Role: chatbot.RoleAssistant, Content: "hello"},
		}, nil)

		require.NoError(t, err)
		assert.FileExists(t, path)
	})
}
