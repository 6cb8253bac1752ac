package crawl

import (
	"fmt"
	"regexp"
	"strings"
)

// Chunk sizing. Sections larger than maxChunkChars are split on paragraph
// boundaries so each embedding input stays well under model limits.
const (
	maxChunkChars = 4000
)

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Section is a heading-delimited slice of a markdown document, carrying the
// heading hierarchy it appeared under.
type Section struct {
	Content  string
	Headings map[string]string
}

// SplitMarkdown splits a markdown document into sections at H1-H3 headings.
// Headings inside fenced code blocks are ignored. Oversized sections are
// further split on blank lines.
func SplitMarkdown(markdown string) []Section {
	var sections []Section
	var buf []string
	headings := make(map[string]string)
	inFence := false

	flush := func() {
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = buf[:0]
		if content == "" {
			return
		}
		snapshot := make(map[string]string, len(headings))
		for k, v := range headings {
			snapshot[k] = v
		}
		for _, part := range splitOversized(content) {
			sections = append(sections, Section{Content: part, Headings: snapshot})
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if !inFence {
			if m := headingRe.FindStringSubmatch(line); m != nil {
				level := len(m[1])
				if level <= 3 {
					flush()
				}
				headings[fmt.Sprintf("h%d", level)] = strings.TrimSpace(m[2])
				for l := level + 1; l <= 6; l++ {
					delete(headings, fmt.Sprintf("h%d", l))
				}
			}
		}
		buf = append(buf, line)
	}
	flush()

	return sections
}

// splitOversized breaks content exceeding maxChunkChars on paragraph
// boundaries. A single paragraph longer than the limit is kept whole.
func splitOversized(content string) []string {
	if len(content) <= maxChunkChars {
		return []string{content}
	}

	var parts []string
	var current strings.Builder
	for _, para := range strings.Split(content, "\n\n") {
		if current.Len() > 0 && current.Len()+len(para)+2 > maxChunkChars {
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		parts = append(parts, s)
	}

	return parts
}
