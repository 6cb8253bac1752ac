package chatbot_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/stretchr/testify/assert"
)

func TestSpeechText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "strips headings",
			markdown: "# Title\n\nSome text",
			want:     "Title Some text",
		},
		{
			name:     "strips emphasis markers",
			markdown: "this is **bold** and *italic* and _underscored_",
			want:     "this is bold and italic and underscored",
		},
		{
			name:     "keeps link text drops target",
			markdown: "see [the docs](https://docs.example) for details",
			want:     "see the docs for details",
		},
		{
			name:     "drops images",
			markdown: "before ![alt text](img.png) after",
			want:     "before after",
		},
		{
			name:     "removes fenced code blocks",
			markdown: "intro\n```go\nfmt.Println(\"hi\")\n```\noutro",
			want:     "intro outro",
		},
		{
			name:     "strips inline code markers",
			markdown: "call `AddURL` to load",
			want:     "call AddURL to load",
		},
		{
			name:     "collapses line breaks",
			markdown: "one\ntwo\n\nthree",
			want:     "one two three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, chatbot.SpeechText(tt.markdown))
		})
	}

	t.Run("truncates long text with marker", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("a", chatbot.MaxSpeechChars*2)
		got := chatbot.SpeechText(long)
		assert.Len(t, got, chatbot.MaxSpeechChars+len(chatbot.SpeechTruncationMarker))
		assert.True(t, strings.HasSuffix(got, chatbot.SpeechTruncationMarker))
	})

	t.Run("truncates multi-byte text on a rune boundary", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("é", chatbot.MaxSpeechChars*2)
		got := chatbot.SpeechText(long)
		assert.True(t, utf8.ValidString(got))
		assert.True(t, strings.HasSuffix(got, chatbot.SpeechTruncationMarker))
		spoken := strings.TrimSuffix(got, chatbot.SpeechTruncationMarker)
		assert.Equal(t, chatbot.MaxSpeechChars, utf8.RuneCountInString(spoken))
	})
}

func TestEstimateSpokenDuration(t *testing.T) {
	t.Parallel()

	short := chatbot.EstimateSpokenDuration("hi")
	long := chatbot.EstimateSpokenDuration(strings.Repeat("word ", 50))
	assert.Greater(t, long, short)
	assert.Positive(t, short)
}
