package entryservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateSlug  = errors.New("duplicate slug")
)

// IndexSyncError reports a failed search document write. The transaction
// wrapping the entry write is rolled back before it is returned, so the
// entry mutation it paired with is never visible either.
type IndexSyncError struct {
	Cause error
}

func (e IndexSyncError) Error() string {
	return fmt.Sprintf("search index sync failed: %v", e.Cause)
}

func (e IndexSyncError) Unwrap() error {
	return e.Cause
}

func newEntryModel(db *sql.DB) *EntryModel {
	return &EntryModel{db: db}
}

// UniqueConstraintError is a helper function to check if the error is a unique constraint error.
func UniqueConstraintError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// insert persists a new entry and its search document as one transaction.
func (m *EntryModel) insert(ctx context.Context, title, slug, content string, published bool) (*Entry, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO entries (title, slug, content, published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	entry := Entry{Title: title, Slug: slug, Content: content, Published: published}
	err = tx.QueryRowContext(ctx, query, title, slug, content, published).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		switch {
		case UniqueConstraintError(err, "entries_slug_key"):
			return nil, ErrDuplicateSlug
		default:
			return nil, err
		}
	}

	if err := syncSearchDocument(ctx, tx, &entry); err != nil {
		return nil, IndexSyncError{Cause: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &entry, nil
}

// update mutates title, content and published in place. Slug and created_at
// are never touched. The paired search document write shares the transaction.
func (m *EntryModel) update(ctx context.Context, id int, title, content string, published bool) (*Entry, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE entries
		SET title = $1, content = $2, published = $3
		WHERE id = $4
		RETURNING slug, created_at`

	entry := Entry{ID: id, Title: title, Content: content, Published: published}
	err = tx.QueryRowContext(ctx, query, title, content, published, id).Scan(&entry.Slug, &entry.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if err := syncSearchDocument(ctx, tx, &entry); err != nil {
		return nil, IndexSyncError{Cause: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (m *EntryModel) getBySlug(ctx context.Context, slug string) (*Entry, error) {
	query := `
		SELECT id, title, slug, content, published, created_at
		FROM entries
		WHERE slug = $1`

	var entry Entry
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&entry.ID, &entry.Title, &entry.Slug, &entry.Content, &entry.Published, &entry.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &entry, nil
}

// list returns entries in the given publish state, newest first.
func (m *EntryModel) list(ctx context.Context, published bool) ([]Entry, error) {
	query := `
		SELECT id, title, slug, content, published, created_at
		FROM entries
		WHERE published = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := m.db.QueryContext(ctx, query, published)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(&entry.ID, &entry.Title, &entry.Slug, &entry.Content, &entry.Published, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
