// Package store owns the three FoodFlow collections (users, businesses
// and the active food-item pool), their persistence to a single JSON
// document, and every user-action operation that mutates them.
//
// Listings are not stored per business at run time: each active item
// lives exactly once in the pool, and a business's listings as well as
// the global browse pool are filtered views over it. The persisted
// document still carries both `listings` and `food_items` arrays for
// compatibility with files written by earlier versions.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/foodflow/internal/logging"
)

// Document is the raw persisted form: three arrays of loosely-typed
// records. Individual records are decoded (and individually skipped on
// failure) later, so one bad record never poisons the whole file.
type Document struct {
	Users      []json.RawMessage `json:"users"`
	Businesses []json.RawMessage `json:"businesses"`
	FoodItems  []json.RawMessage `json:"food_items"`
}

// EmptyDocument returns a document with all three arrays present but
// empty.
func EmptyDocument() *Document {
	return &Document{
		Users:      []json.RawMessage{},
		Businesses: []json.RawMessage{},
		FoodItems:  []json.RawMessage{},
	}
}

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// ReadDocument reads the persisted document at path. A missing file,
// empty or whitespace-only content, and malformed JSON all yield an
// empty document; each case is logged at Warn and never surfaced as an
// error; a corrupt file means starting over with empty state.
func ReadDocument(ctx context.Context, path string, log logging.Logger) *Document {
	b, err := readFile(path)
	if err != nil {
		log.Warn(ctx, "data file unreadable, starting empty", "path", path, "error", err)
		return EmptyDocument()
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return EmptyDocument()
	}

	doc := &Document{}
	if err := json.Unmarshal(b, doc); err != nil {
		log.Warn(ctx, "data file is not valid JSON, starting empty", "path", path, "error", err)
		return EmptyDocument()
	}
	if doc.Users == nil {
		doc.Users = []json.RawMessage{}
	}
	if doc.Businesses == nil {
		doc.Businesses = []json.RawMessage{}
	}
	if doc.FoodItems == nil {
		doc.FoodItems = []json.RawMessage{}
	}
	return doc
}

// ReadDocumentWithTimeout runs ReadDocument off the caller's goroutine
// and waits at most timeout for it. On timeout the caller proceeds with
// an empty document and the late result is discarded; the channel is
// buffered so the loader goroutine never blocks forever.
func ReadDocumentWithTimeout(ctx context.Context, path string, timeout time.Duration, log logging.Logger) *Document {
	ch := make(chan *Document, 1)
	go func() {
		ch <- ReadDocument(ctx, path, log)
	}()

	select {
	case doc := <-ch:
		return doc
	case <-time.After(timeout):
		log.Warn(ctx, "data file load timed out, starting empty", "path", path, "timeout", timeout)
		return EmptyDocument()
	case <-ctx.Done():
		return EmptyDocument()
	}
}
