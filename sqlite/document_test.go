package sqlite_test

import (
	"context"
	"testing"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/B-Manish/web-scraper-chatbot/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustCreateSource creates a source for use in document and chunk tests.
func mustCreateSource(tb testing.TB, db *sqlite.DB, url string) *chatbot.Source {
	tb.Helper()

	source := &chatbot.Source{URL: url}
	if err := sqlite.NewSourceService(db).CreateSource(context.Background(), source); err != nil {
		tb.Fatal(err)
	}
	return source
}

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("creates with hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		source := mustCreateSource(t, db, "https://a.example")
		s := sqlite.NewDocumentService(db)

		doc := &chatbot.Document{SourceID: source.ID, PageURL: "https://a.example/p1", Content: "# Hello"}
		require.NoError(t, s.CreateDocument(context.Background(), doc))

		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.ContentHash)
		assert.False(t, doc.FetchedAt.IsZero())
	})

	t.Run("rejects missing content", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewDocumentService(db)

		err := s.CreateDocument(context.Background(), &chatbot.Document{SourceID: "s", PageURL: "https://a.example"})
		assert.Equal(t, chatbot.EINVALID, chatbot.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	source := mustCreateSource(t, db, "https://a.example")
	s := sqlite.NewDocumentService(db)
	ctx := context.Background()

	for i, url := range []string{"https://a.example/p1", "https://a.example/p2"} {
		require.NoError(t, s.CreateDocument(ctx, &chatbot.Document{
			SourceID: source.ID,
			PageURL:  url,
			Content:  "content",
			Position: i,
		}))
	}

	t.Run("filters by source and orders by position", func(t *testing.T) {
		t.Parallel()

		docs, err := s.FindDocuments(ctx, chatbot.DocumentFilter{SourceID: &source.ID})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "https://a.example/p1", docs[0].PageURL)
		assert.Equal(t, "https://a.example/p2", docs[1].PageURL)
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		docs, err := s.FindDocuments(ctx, chatbot.DocumentFilter{SourceID: &source.ID, Limit: 1})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})
}

func TestDocumentService_FindDocumentByID(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	s := sqlite.NewDocumentService(db)

	_, err := s.FindDocumentByID(context.Background(), "missing")
	assert.Equal(t, chatbot.ENOTFOUND, chatbot.ErrorCode(err))
}
