// Package fs provides file-based persistence for chat transcripts.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// FormatTranscript renders a transcript as markdown with a small
// frontmatter header. Roles become headings so saved conversations stay
// readable in any editor.
func FormatTranscript(messages []chatbot.Message, urls []string, savedAt time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("saved: ")
	b.WriteString(savedAt.Format("2006-01-02 15:04"))
	if len(urls) > 0 {
		b.WriteString("\nsources: ")
		b.WriteString(strings.Join(urls, ", "))
	}
	b.WriteString("\n---\n")

	for _, msg := range messages {
		label := "Assistant"
		if msg.Role == chatbot.RoleUser {
			label = "You"
		}
		b.WriteString(fmt.Sprintf("\n## %s\n\n%s\n", label, msg.Content))
	}

	return b.String()
}

// TranscriptWriter saves chat transcripts to a directory, one markdown file
// per save, named by timestamp.
type TranscriptWriter struct {
	baseDir string
}

// NewTranscriptWriter creates a TranscriptWriter rooted at baseDir.
func NewTranscriptWriter(baseDir string) *TranscriptWriter {
	return &TranscriptWriter{baseDir: baseDir}
}

// Save writes the transcript to disk and returns the file path.
func (w *TranscriptWriter) Save(messages []chatbot.Message, urls []string) (string, error) {
	if len(messages) == 0 {
		return "", chatbot.Errorf(chatbot.EINVALID, "transcript is empty")
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	now := time.Now()
	path := filepath.Join(w.baseDir, fmt.Sprintf("chat-%s.md", now.Format("2006-01-02-150405")))
	content := FormatTranscript(messages, urls, now)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
