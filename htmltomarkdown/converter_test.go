package htmltomarkdown_test

import (
	"testing"

	"github.com/B-Manish/web-scraper-chatbot/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		md, err := c.Convert("<h1>Title</h1><p>Some <strong>bold</strong> text.</p>")

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "**bold**")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		md, err := c.Convert(`<p>See <a href="https://example.com">the site</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[the site](https://example.com)")
	})

	t.Run("empty input is an error", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		_, err := c.Convert("   ")
		assert.Error(t, err)
	})
}
