package entryservice

import (
	"database/sql"
	"time"

	"github.com/quillhq/quill/internal/common"
)

type Entry struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	// Slug is assigned at first save and never recomputed afterwards.
	Slug string `json:"slug"`
	// Content is stored in Markdown format.
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchDocument is the indexable projection of one Entry. It is derived
// state: only the entry model writes it, and always inside the same
// transaction as the entry row it mirrors.
type SearchDocument struct {
	EntryID     int    `json:"entry_id"`
	IndexedText string `json:"indexed_text"`
}

type SearchResult struct {
	Entry Entry   `json:"entry"`
	Score float64 `json:"score"`
}

type EntryModel struct {
	db *sql.DB
}

type EntryService struct {
	m *EntryModel
	c *common.Cache
}
