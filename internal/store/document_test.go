package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodflow/internal/logging"
	"github.com/stretchr/testify/require"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReadDocument_MissingFile(t *testing.T) {
	doc := ReadDocument(context.Background(), filepath.Join(t.TempDir(), "nope.json"), discardLogger())
	require.NotNil(t, doc)
	require.Empty(t, doc.Users)
	require.Empty(t, doc.Businesses)
	require.Empty(t, doc.FoodItems)
}

func TestReadDocument_EmptyAndWhitespaceFiles(t *testing.T) {
	for name, content := range map[string]string{
		"empty":      "",
		"whitespace": "  \n\t  \n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			doc := ReadDocument(context.Background(), path, discardLogger())
			require.Empty(t, doc.Users)
			require.Empty(t, doc.FoodItems)
		})
	}
}

func TestReadDocument_MalformedJSONTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [`), 0o600))

	doc := ReadDocument(context.Background(), path, discardLogger())
	require.Empty(t, doc.Users)
	require.Empty(t, doc.Businesses)
	require.Empty(t, doc.FoodItems)
}

func TestReadDocument_MissingArraysArePresentButEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [{"username":"a"}]}`), 0o600))

	doc := ReadDocument(context.Background(), path, discardLogger())
	require.Len(t, doc.Users, 1)
	require.NotNil(t, doc.Businesses)
	require.NotNil(t, doc.FoodItems)
}

func TestReadDocumentWithTimeout_SlowLoadYieldsEmpty(t *testing.T) {
	orig := readFile
	t.Cleanup(func() { readFile = orig })

	readFile = func(string) ([]byte, error) {
		time.Sleep(200 * time.Millisecond)
		return []byte(`{"users":[{"username":"late"}]}`), nil
	}

	doc := ReadDocumentWithTimeout(context.Background(), "ignored", 20*time.Millisecond, discardLogger())
	require.Empty(t, doc.Users, "a late-arriving load must be discarded")
}

func TestReadDocumentWithTimeout_FastLoadWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users":[{"username":"a"}]}`), 0o600))

	doc := ReadDocumentWithTimeout(context.Background(), path, time.Second, discardLogger())
	require.Len(t, doc.Users, 1)
}

func TestReadDocumentWithTimeout_ReadErrorStillEmptyNotFatal(t *testing.T) {
	orig := readFile
	t.Cleanup(func() { readFile = orig })

	readFile = func(string) ([]byte, error) { return nil, errors.New("disk on fire") }

	doc := ReadDocumentWithTimeout(context.Background(), "ignored", time.Second, discardLogger())
	require.Empty(t, doc.Users)
}
