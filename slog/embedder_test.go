package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docqa/mock"
	qaslog "github.com/fwojciec/docqa/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("logs batch size and dimension", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Embedder{
			EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
				return [][]float32{{1, 0, 0}, {0, 1, 0}}, nil
			},
			ModelFn: func() string { return "test-model" },
		}

		embedder := qaslog.NewLoggingEmbedder(inner, logger)
		vecs, err := embedder.Embed(context.Background(), []string{"a", "b"})

		require.NoError(t, err)
		assert.Len(t, vecs, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=embed")
		assert.Contains(t, output, "model=test-model")
		assert.Contains(t, output, "texts=2")
		assert.Contains(t, output, "dimension=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Embedder{
			EmbedFn: func(context.Context, []string) ([][]float32, error) {
				return nil, errors.New("rate limited")
			},
			ModelFn: func() string { return "test-model" },
		}

		embedder := qaslog.NewLoggingEmbedder(inner, logger)
		_, err := embedder.Embed(context.Background(), []string{"a"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"rate limited\"")
	})
}

func TestLoggingEmbedder_Model(t *testing.T) {
	t.Parallel()

	inner := &mock.Embedder{ModelFn: func() string { return "m" }}

	embedder := qaslog.NewLoggingEmbedder(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.Equal(t, "m", embedder.Model())
}
