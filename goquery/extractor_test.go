package goquery_test

import (
	"testing"

	"github.com/B-Manish/web-scraper-chatbot/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("strips scripts and styles", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>My Page</title><style>body{}</style></head>
			<body><script>var x=1;</script><p>Hello world</p><noscript>enable js</noscript></body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "My Page", result.Title)
		assert.Contains(t, result.ContentHTML, "Hello world")
		assert.NotContains(t, result.ContentHTML, "var x=1;")
		assert.NotContains(t, result.ContentHTML, "enable js")
	})

	t.Run("empty input is an error", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		_, err := e.Extract("")
		assert.Error(t, err)
	})
}
