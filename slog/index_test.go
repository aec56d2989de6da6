package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/mock"
	qaslog "github.com/fwojciec/docqa/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingIndex_BuildFromDocs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Index{
		BuildFromDocsFn: func(context.Context, []*docqa.Document, int) error { return nil },
		LenFn:           func() int { return 7 },
	}

	idx := qaslog.NewLoggingIndex(inner, logger)
	err := idx.BuildFromDocs(context.Background(), []*docqa.Document{{ID: "a"}, {ID: "b"}}, 50)

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "index build")
	assert.Contains(t, output, "docs=2")
	assert.Contains(t, output, "min_len=50")
	assert.Contains(t, output, "chunks=7")
}

func TestLoggingIndex_SearchLogsAtDebug(t *testing.T) {
	t.Parallel()

	inner := &mock.Index{
		SearchFn: func(context.Context, string, int) ([]docqa.SearchResult, error) {
			return []docqa.SearchResult{{Score: 0.5}}, nil
		},
	}

	t.Run("silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		idx := qaslog.NewLoggingIndex(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := idx.Search(context.Background(), "cats", 3)

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("logs at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		idx := qaslog.NewLoggingIndex(inner, logger)

		results, err := idx.Search(context.Background(), "cats", 3)

		require.NoError(t, err)
		assert.Len(t, results, 1)
		output := buf.String()
		assert.Contains(t, output, "index search")
		assert.Contains(t, output, "query=cats")
		assert.Contains(t, output, "top_k=3")
		assert.Contains(t, output, "best=0.5")
	})
}

func TestLoggingIndex_Save(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var saved string
	inner := &mock.Index{
		SaveFn: func(path string) error { saved = path; return nil },
		LenFn:  func() int { return 3 },
	}

	idx := qaslog.NewLoggingIndex(inner, slog.New(slog.NewTextHandler(&buf, nil)))
	err := idx.Save("/tmp/c.idx")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/c.idx", saved)
	assert.Contains(t, buf.String(), "path=/tmp/c.idx")
}
