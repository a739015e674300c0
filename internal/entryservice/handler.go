package entryservice

import (
	"context"
	"database/sql"

	"github.com/quillhq/quill/internal/common"
)

func NewEntryService(db *sql.DB, c *common.Cache) *EntryService {
	return &EntryService{m: newEntryModel(db), c: c}
}

type CreateEntryRequest struct {
	Title string `json:"title"`
	// Slug is optional; when empty it is derived from the title.
	Slug      string `json:"slug,omitempty"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// CreateEntry persists a new entry together with its search document. The
// two writes commit atomically or not at all.
func (s *EntryService) CreateEntry(ctx context.Context, req *CreateEntryRequest) (*Entry, error) {
	content := sanitizeMarkdown(req.Content)

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.Title)
	}
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	entry, err := s.m.insert(ctx, req.Title, slug, content, req.Published)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyEntryBySlug(entry.Slug), entry)

	return entry, nil
}

// UpdateEntry mutates the entry addressed by slug. Slug and creation time
// never change; the search document is resynchronized in the same
// transaction as the entry write.
func (s *EntryService) UpdateEntry(ctx context.Context, slug, title, content string, published bool) (*Entry, error) {
	content = sanitizeMarkdown(content)

	v := common.NewValidator()
	validateTitle(v, title)
	validateContent(v, content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	current, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	entry, err := s.m.update(ctx, current.ID, title, content, published)
	if err != nil {
		return nil, err
	}

	// publish the fresh row; readers only Add when the key is absent, so a
	// slow concurrent read cannot reinstate the pre-update row afterwards
	s.c.Set(common.CacheKeyEntryBySlug(slug), entry)

	return entry, nil
}

// GetEntryBySlug returns one entry. Unpublished entries are only visible to
// privileged callers; everyone else gets ErrRecordNotFound.
func (s *EntryService) GetEntryBySlug(ctx context.Context, slug string, privileged bool) (*Entry, error) {
	v := common.NewValidator()
	v.Check(slug != "", "slug", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyEntryBySlug(slug)); ok {
		if entry, ok := cached.(*Entry); ok {
			return visibleTo(entry, privileged)
		}
	}

	entry, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.c.Add(common.CacheKeyEntryBySlug(slug), entry)

	return visibleTo(entry, privileged)
}

func visibleTo(entry *Entry, privileged bool) (*Entry, error) {
	if !entry.Published && !privileged {
		return nil, ErrRecordNotFound
	}
	return entry, nil
}

// ListPublished returns published entries, newest first.
func (s *EntryService) ListPublished(ctx context.Context) ([]Entry, error) {
	return s.m.list(ctx, true)
}

// ListDrafts returns unpublished entries, newest first. Restricting it to
// privileged callers is the transport layer's responsibility.
func (s *EntryService) ListDrafts(ctx context.Context) ([]Entry, error) {
	return s.m.list(ctx, false)
}

// Search tokenizes rawQuery and returns entries containing every term,
// ranked by relevance. Non-privileged callers only see published entries.
// An empty or whitespace-only query returns no results.
func (s *EntryService) Search(ctx context.Context, rawQuery string, privileged bool) ([]SearchResult, error) {
	terms := searchTerms(rawQuery)
	if len(terms) == 0 {
		return []SearchResult{}, nil
	}

	return s.m.searchRanked(ctx, terms, !privileged)
}

// RebuildSearchIndex rederives all search documents from the entries table.
func (s *EntryService) RebuildSearchIndex(ctx context.Context) error {
	return s.m.rebuildIndex(ctx)
}
