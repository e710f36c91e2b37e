// Package notes holds the core of sentinote: the note store, which maps
// notes onto a single-table keyed store with a secondary text ordering, and
// the creation workflow, which classifies text before the one and only
// write.
//
// Storage and pagination semantics:
//
//   - Each note occupies exactly one item, keyed by the partition constant
//     and a sort key carrying the note ID; the search ordering is derived
//     from the same item's text attribute, never stored separately.
//   - List and Search share one pagination contract: a page of at most
//     Limit notes plus an opaque cursor when further results may exist.
//     List traverses the primary ordering descending (newest first);
//     Search traverses the byText ordering ascending.
//   - A missing note is a normal Get result (nil, nil), never an error.
//
// The store performs no retries and substitutes no defaults: every storage
// failure propagates to the caller wrapped but otherwise unmodified.
package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/sentinote/sentinote/pkg/cursor"
	"github.com/sentinote/sentinote/pkg/keys"
	"github.com/sentinote/sentinote/pkg/models"
	"github.com/sentinote/sentinote/pkg/storage"
)

// Store provides note persistence and retrieval over a storage.Table. The
// zero value is not usable; construct with NewStore. Store is stateless
// beyond the table handle and safe for concurrent use.
type Store struct {
	table storage.Table
}

// NewStore returns a Store backed by table.
func NewStore(table storage.Table) *Store {
	return &Store{table: table}
}

// PageOptions carries the shared pagination inputs of List and Search.
type PageOptions struct {
	// Cursor resumes a prior traversal; empty starts from the beginning.
	Cursor string
	// Limit caps the page size and must be positive; the store rejects
	// rather than clamps out-of-range values.
	Limit int
}

// Page is one slice of a List or Search traversal. Cursor is empty when
// the traversal is exhausted.
type Page struct {
	Notes  []*models.Note `json:"notes"`
	Cursor string         `json:"cursor,omitempty"`
}

// Get looks a note up by ID. A missing note returns (nil, nil).
func (s *Store) Get(ctx context.Context, id models.NoteID) (*models.Note, error) {
	if id.IsZero() {
		return nil, invalidArgument("id", "must not be zero")
	}
	item, err := s.table.Get(ctx, storage.Key{
		storage.AttrPartition: keys.Partition,
		storage.AttrSort:      keys.SortKey(id.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("get note %s: %w", id, err)
	}
	if item == nil {
		return nil, nil
	}
	return noteFromItem(item)
}

// Save writes the note as a single atomic put, keyed by its primary key;
// the search ordering key is computed into the same item. Saving the same
// note twice is idempotent; saving a different note under the same ID
// overwrites, since uniqueness is guaranteed by the ID generator upstream.
func (s *Store) Save(ctx context.Context, note *models.Note) (*models.Note, error) {
	switch {
	case note == nil:
		return nil, invalidArgument("note", "must not be nil")
	case note.ID.IsZero():
		return nil, invalidArgument("id", "must not be zero")
	case note.Text == "":
		return nil, invalidArgument("text", "must not be empty")
	case !note.Sentiment.Valid():
		return nil, invalidArgument("sentiment", fmt.Sprintf("unknown label %q", note.Sentiment))
	}

	if err := s.table.Put(ctx, itemFromNote(note)); err != nil {
		return nil, fmt.Errorf("save note %s: %w", note.ID, err)
	}
	return note, nil
}

// List returns notes ordered by ID descending, i.e. newest first.
func (s *Store) List(ctx context.Context, opts PageOptions) (*Page, error) {
	return s.page(ctx, opts, storage.Query{
		Partition:  keys.Partition,
		SortPrefix: keys.SortKeyPrefix(),
		Ascending:  false,
	})
}

// Search returns notes whose text begins with query, byte-prefix and
// case-sensitive, ordered by (text, ID) ascending.
func (s *Store) Search(ctx context.Context, query string, opts PageOptions) (*Page, error) {
	if query == "" {
		return nil, invalidArgument("query", "must not be empty")
	}
	return s.page(ctx, opts, storage.Query{
		Index:      storage.IndexByText,
		Partition:  keys.Partition,
		SortPrefix: query,
		Ascending:  true,
	})
}

func (s *Store) page(ctx context.Context, opts PageOptions, q storage.Query) (*Page, error) {
	if opts.Limit <= 0 {
		return nil, invalidArgument("limit", "must be a positive integer")
	}
	startKey, err := cursor.Decode(opts.Cursor)
	if err != nil {
		return nil, err
	}
	q.StartKey = startKey
	q.Limit = opts.Limit

	result, err := s.table.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}

	page := &Page{Notes: make([]*models.Note, 0, len(result.Items))}
	for _, item := range result.Items {
		note, err := noteFromItem(item)
		if err != nil {
			return nil, err
		}
		page.Notes = append(page.Notes, note)
	}
	page.Cursor = cursor.Encode(result.LastKey)
	return page, nil
}

func itemFromNote(note *models.Note) storage.Item {
	id := note.ID.String()
	return storage.Item{
		storage.AttrPartition: keys.Partition,
		storage.AttrSort:      keys.SortKey(id),
		storage.AttrText:      keys.SearchKey(note.Text, id),
		storage.AttrCreatedAt: note.CreatedAt.UTC().Format(time.RFC3339),
		storage.AttrSentiment: string(note.Sentiment),
	}
}

func noteFromItem(item storage.Item) (*models.Note, error) {
	rawID := keys.NoteIDFromSortKey(item[storage.AttrSort])
	id, err := models.ParseNoteID(rawID)
	if err != nil {
		return nil, fmt.Errorf("corrupt item %q: %w", item[storage.AttrSort], err)
	}
	var createdAt time.Time
	if raw := item[storage.AttrCreatedAt]; raw != "" {
		createdAt, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt item %q: bad createdAt: %w", item[storage.AttrSort], err)
		}
	}
	return &models.Note{
		ID:        id,
		Text:      keys.TextFromSearchKey(item[storage.AttrText], rawID),
		Sentiment: models.Sentiment(item[storage.AttrSentiment]),
		CreatedAt: createdAt,
	}, nil
}
