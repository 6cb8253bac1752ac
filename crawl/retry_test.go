package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/B-Manish/web-scraper-chatbot/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// immediateDelays avoids real backoff waits in tests.
func immediateDelays() []time.Duration {
	return []time.Duration{0, 0, 0}
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://a.example", fetch, immediateDelays())

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("timeout")
			}
			return "ok", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://a.example", fetch, immediateDelays())

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after all attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("down")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://a.example", fetch, immediateDelays())

		require.Error(t, err)
		assert.Equal(t, 4, calls) // 1 initial + 3 retries
	})

	t.Run("stops when context canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(_ context.Context, _ string) (string, error) {
			cancel()
			return "", errors.New("down")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://a.example", fetch, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
