package crawl_test

import (
	"strings"
	"testing"

	"github.com/B-Manish/web-scraper-chatbot/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("splits at headings", func(t *testing.T) {
		t.Parallel()

		markdown := "# Guide\n\nIntro text.\n\n## Install\n\nRun the installer.\n\n## Usage\n\nCall the API."

		sections := crawl.SplitMarkdown(markdown)

		require.Len(t, sections, 3)
		assert.Contains(t, sections[0].Content, "Intro text.")
		assert.Contains(t, sections[1].Content, "Run the installer.")
		assert.Contains(t, sections[2].Content, "Call the API.")
	})

	t.Run("tracks heading hierarchy", func(t *testing.T) {
		t.Parallel()

		markdown := "# Guide\n\nIntro.\n\n## Install\n\nSteps."

		sections := crawl.SplitMarkdown(markdown)

		require.Len(t, sections, 2)
		assert.Equal(t, "Guide", sections[0].Headings["h1"])
		assert.Equal(t, "Guide", sections[1].Headings["h1"])
		assert.Equal(t, "Install", sections[1].Headings["h2"])
	})

	t.Run("clears deeper headings when a new section starts", func(t *testing.T) {
		t.Parallel()

		markdown := "## First\n\nText.\n\n### Detail\n\nMore.\n\n## Second\n\nOther."

		sections := crawl.SplitMarkdown(markdown)

		require.Len(t, sections, 3)
		last := sections[len(sections)-1]
		assert.Equal(t, "Second", last.Headings["h2"])
		assert.NotContains(t, last.Headings, "h3")
	})

	t.Run("ignores headings inside code fences", func(t *testing.T) {
		t.Parallel()

		markdown := "# Guide\n\nText.\n\n```\n# not a heading\n```\n\nMore text."

		sections := crawl.SplitMarkdown(markdown)

		require.Len(t, sections, 1)
		assert.Contains(t, sections[0].Content, "# not a heading")
	})

	t.Run("keeps content before the first heading", func(t *testing.T) {
		t.Parallel()

		markdown := "Preamble without heading.\n\n# Guide\n\nBody."

		sections := crawl.SplitMarkdown(markdown)

		require.Len(t, sections, 2)
		assert.Equal(t, "Preamble without heading.", sections[0].Content)
		assert.Empty(t, sections[0].Headings)
	})

	t.Run("returns nothing for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, crawl.SplitMarkdown(""))
		assert.Empty(t, crawl.SplitMarkdown("   \n\n  "))
	})

	t.Run("splits oversized sections on paragraphs", func(t *testing.T) {
		t.Parallel()

		para := strings.Repeat("word ", 600) // ~3000 chars
		markdown := "# Big\n\n" + para + "\n\n" + para

		sections := crawl.SplitMarkdown(markdown)

		require.Greater(t, len(sections), 1)
		for _, section := range sections {
			assert.Equal(t, "Big", section.Headings["h1"])
		}
	})
}
