package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/B-Manish/web-scraper-chatbot/cmd/chatbotd"
)

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8000", cli.Addr)
	assert.Equal(t, "gemini", cli.Agent)
	assert.False(t, cli.NoBrowser)
}

func TestCLI_RejectsUnknownAgent(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--agent", "llama"})
	assert.Error(t, err)
}

func TestRun_RequiresAPIKey(t *testing.T) {
	// t.Setenv forbids t.Parallel.

	t.Run("gemini", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
		assert.Contains(t, stderr.String(), "aistudio.google.com")
	})

	t.Run("openai", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--agent", "openai"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})
}
