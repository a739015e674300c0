package entryservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchVisibility(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})

	published := createTestEntry(t, s, "Rust Basics", "ownership and borrowing", true)
	draft := createTestEntry(t, s, "Draft Notes", "ownership experiments", false)

	ctx := context.Background()

	// anonymous callers only see published entries
	results, err := s.Search(ctx, "ownership", false)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, published.Slug, results[0].Entry.Slug)

	// privileged callers see drafts too, ordered by score with the older
	// entry winning ties
	results, err = s.Search(ctx, "ownership", true)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, published.Slug, results[0].Entry.Slug)
	assert.Equal(t, draft.Slug, results[1].Entry.Slug)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestSearchAllTermsRequired(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})

	createTestEntry(t, s, "Rust Basics", "ownership and borrowing", true)
	createTestEntry(t, s, "Draft Notes", "ownership experiments", true)

	results, err := s.Search(context.Background(), "ownership borrowing", false)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "rust-basics", results[0].Entry.Slug)
}

func TestSearchFullTitle(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})

	entry := createTestEntry(t, s, "Rust Basics", "ownership and borrowing", true)
	createTestEntry(t, s, "Unrelated Entry", "nothing to see here", true)

	ctx := context.Background()

	results, err := s.Search(ctx, entry.Title, false)
	assert.NoError(t, err)
	assert.NotEmpty(t, results)
	assert.Equal(t, entry.Slug, results[0].Entry.Slug)

	// unpublishing the entry hides it from anonymous search
	_, err = s.UpdateEntry(ctx, entry.Slug, entry.Title, entry.Content, false)
	assert.NoError(t, err)

	results, err = s.Search(ctx, entry.Title, false)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchEmptyQuery(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})

	createTestEntry(t, s, "Rust Basics", "ownership and borrowing", true)

	for _, rawQuery := range []string{"", "   ", " \t\n "} {
		results, err := s.Search(context.Background(), rawQuery, false)
		assert.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}

	// a query with no hits serializes the same way as an empty query
	results, err := s.Search(context.Background(), "nosuchterm", false)
	assert.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchAfterUpdate(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})

	entry := createTestEntry(t, s, "Rust Basics", "ownership and borrowing", true)

	ctx := context.Background()

	results, err := s.Search(ctx, "ownership", false)
	assert.NoError(t, err)
	assert.Len(t, results, 1)

	// removing the term from the content must remove the entry from results
	_, err = s.UpdateEntry(ctx, entry.Slug, entry.Title, "borrowing only now", true)
	assert.NoError(t, err)

	results, err = s.Search(ctx, "ownership", false)
	assert.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRebuildSearchIndex(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})

	entries := []*Entry{
		createTestEntry(t, s, "First Entry", "alpha beta", true),
		createTestEntry(t, s, "Second Entry", "gamma delta", false),
		createTestEntry(t, s, "Third Entry", "epsilon zeta", true),
	}

	ctx := context.Background()

	// corrupt one document and drop another to simulate a diverged index
	_, err := db.Exec("UPDATE search_documents SET indexed_text = 'garbage' WHERE entry_id = $1", entries[0].ID)
	assert.NoError(t, err)
	_, err = db.Exec("DELETE FROM search_documents WHERE entry_id = $1", entries[1].ID)
	assert.NoError(t, err)

	err = s.RebuildSearchIndex(ctx)
	assert.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM search_documents").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, len(entries), count)

	// the rebuilt documents match what incremental sync would have written
	for _, entry := range entries {
		doc, err := s.m.getSearchDocument(ctx, entry.ID)
		assert.NoError(t, err)
		assert.Equal(t, entry.Title+"\n"+entry.Content, doc.IndexedText)
	}

	// and ranked retrieval works against the rebuilt index
	results, err := s.Search(ctx, "alpha", false)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, entries[0].Slug, results[0].Entry.Slug)
}
