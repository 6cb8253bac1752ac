package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/B-Manish/web-scraper-chatbot/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceService_CreateSource(t *testing.T) {
	t.Parallel()

	t.Run("creates and assigns ID", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewSourceService(db)
		ctx := context.Background()

		source := &chatbot.Source{URL: "https://a.example", Title: "A"}
		require.NoError(t, s.CreateSource(ctx, source))
		assert.NotEmpty(t, source.ID)
		assert.False(t, source.LoadedAt.IsZero())
	})

	t.Run("rejects duplicate URL", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewSourceService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateSource(ctx, &chatbot.Source{URL: "https://a.example"}))
		err := s.CreateSource(ctx, &chatbot.Source{URL: "https://a.example"})
		assert.Equal(t, chatbot.ECONFLICT, chatbot.ErrorCode(err))
	})

	t.Run("rejects non-http URL", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewSourceService(db)

		err := s.CreateSource(context.Background(), &chatbot.Source{URL: "ftp://a.example"})
		assert.Equal(t, chatbot.EINVALID, chatbot.ErrorCode(err))
	})
}

func TestSourceService_FindSources(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	s := sqlite.NewSourceService(db)
	ctx := context.Background()

	require.NoError(t, s.CreateSource(ctx, &chatbot.Source{URL: "https://a.example"}))
	require.NoError(t, s.CreateSource(ctx, &chatbot.Source{URL: "https://b.example"}))

	sources, err := s.FindSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "https://a.example", sources[0].URL)
	assert.Equal(t, "https://b.example", sources[1].URL)
}

func TestSourceService_FindSources_PreservesLoadOrder(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	s := sqlite.NewSourceService(db)
	ctx := context.Background()

	// Sequential loads land within the same second; the timestamp alone
	// cannot order them.
	urls := make([]string, 20)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://site-%02d.example", i)
		require.NoError(t, s.CreateSource(ctx, &chatbot.Source{URL: urls[i]}))
	}

	sources, err := s.FindSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, len(urls))
	for i, source := range sources {
		assert.Equal(t, urls[i], source.URL)
	}
}

func TestSourceService_DeleteSource(t *testing.T) {
	t.Parallel()

	t.Run("cascades to documents and chunks", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		sources := sqlite.NewSourceService(db)
		docs := sqlite.NewDocumentService(db)
		chunks := sqlite.NewChunkService(db)
		ctx := context.Background()

		source := &chatbot.Source{URL: "https://a.example"}
		require.NoError(t, sources.CreateSource(ctx, source))

		doc := &chatbot.Document{SourceID: source.ID, PageURL: "https://a.example/p1", Content: "hello"}
		require.NoError(t, docs.CreateDocument(ctx, doc))

		require.NoError(t, chunks.CreateChunks(ctx, []*chatbot.Chunk{
			{DocumentID: doc.ID, SourceID: source.ID, Content: "hello"},
		}))

		require.NoError(t, sources.DeleteSource(ctx, "https://a.example"))

		remaining, err := docs.FindDocuments(ctx, chatbot.DocumentFilter{SourceID: &source.ID})
		require.NoError(t, err)
		assert.Empty(t, remaining)

		count, err := chunks.CountChunks(ctx, chatbot.ChunkFilter{SourceID: &source.ID})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("unknown URL returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewSourceService(db)

		err := s.DeleteSource(context.Background(), "https://missing.example")
		assert.Equal(t, chatbot.ENOTFOUND, chatbot.ErrorCode(err))
	})
}

func TestSourceService_DeleteAllSources(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	s := sqlite.NewSourceService(db)
	ctx := context.Background()

	require.NoError(t, s.CreateSource(ctx, &chatbot.Source{URL: "https://a.example"}))
	require.NoError(t, s.CreateSource(ctx, &chatbot.Source{URL: "https://b.example"}))

	require.NoError(t, s.DeleteAllSources(ctx))

	sources, err := s.FindSources(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)
}
