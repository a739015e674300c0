package entryservice

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// indexedText is the canonical searchable form of an entry.
func indexedText(title, content string) string {
	return title + "\n" + content
}

// syncSearchDocument upserts the search document for an entry. It must run
// on the same transaction as the entry write that triggered it: an entry
// row and a stale or missing search document must never commit together.
func syncSearchDocument(ctx context.Context, tx *sql.Tx, entry *Entry) error {
	query := `
		INSERT INTO search_documents (entry_id, indexed_text)
		VALUES ($1, $2)
		ON CONFLICT (entry_id) DO UPDATE SET indexed_text = EXCLUDED.indexed_text`

	_, err := tx.ExecContext(ctx, query, entry.ID, indexedText(entry.Title, entry.Content))
	return err
}

func (m *EntryModel) getSearchDocument(ctx context.Context, entryID int) (*SearchDocument, error) {
	query := `
		SELECT entry_id, indexed_text
		FROM search_documents
		WHERE entry_id = $1`

	var doc SearchDocument
	err := m.db.QueryRowContext(ctx, query, entryID).Scan(&doc.EntryID, &doc.IndexedText)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &doc, nil
}

// searchRanked returns entries whose indexed text contains every term,
// scored by the engine's rank function. Ordering is score descending with
// entry id ascending as the tie-break, so equal scores still yield a total
// order. The join back to entries drops any search document without a live
// entry row.
func (m *EntryModel) searchRanked(ctx context.Context, terms []string, publishedOnly bool) ([]SearchResult, error) {
	query := `
		SELECT e.id, e.title, e.slug, e.content, e.published, e.created_at, ts_rank(d.tsv, query) AS score
		FROM search_documents d
		INNER JOIN entries e ON e.id = d.entry_id
		CROSS JOIN plainto_tsquery('simple', $1) AS query
		WHERE d.tsv @@ query AND ($2 = false OR e.published = true)
		ORDER BY score DESC, e.id ASC`

	rows, err := m.db.QueryContext(ctx, query, strings.Join(terms, " "), publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		var result SearchResult
		err := rows.Scan(&result.Entry.ID, &result.Entry.Title, &result.Entry.Slug, &result.Entry.Content, &result.Entry.Published, &result.Entry.CreatedAt, &result.Score)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// rebuildIndex rederives every search document from the entries table in a
// single transaction. Recovery path: the result is identical to what the
// incremental per-save synchronization would have produced.
func (m *EntryModel) rebuildIndex(ctx context.Context) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM search_documents`)
	if err != nil {
		return IndexSyncError{Cause: err}
	}

	query := `
		INSERT INTO search_documents (entry_id, indexed_text)
		SELECT id, title || E'\n' || content
		FROM entries`

	_, err = tx.ExecContext(ctx, query)
	if err != nil {
		return IndexSyncError{Cause: err}
	}

	return tx.Commit()
}
