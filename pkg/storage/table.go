// Package storage defines the key-value service boundary the note store is
// written against. A [Table] is a single-table keyed store with one
// partition attribute, a primary sort attribute, and one secondary ordering
// (the byText index) over the same partition. Implementations live in the
// sub-packages:
//
//   - [github.com/sentinote/sentinote/pkg/storage/dynamodb]: AWS DynamoDB,
//     the deployment target
//   - [github.com/sentinote/sentinote/pkg/storage/surreal]: SurrealDB over
//     the official Go SDK
//   - [github.com/sentinote/sentinote/pkg/storage/memory]: in-process store
//     for tests and local development
//
// The boundary deliberately mirrors DynamoDB's query primitive: range
// queries take a partition value, a begins_with condition on the active
// sort attribute, a direction, an exclusive start key and a limit, and
// return an optional last-evaluated key usable to resume. Implementations
// must return a last-evaluated key only when at least one further matching
// item exists, so an exhausted result set never hands the caller a cursor
// to an empty page.
package storage

import "context"

// Attribute names shared by all backends.
const (
	AttrPartition = "pk"
	AttrSort      = "sk"
	AttrText      = "text"
	AttrCreatedAt = "createdAt"
	AttrSentiment = "sentiment"
)

// IndexByText names the secondary ordering keyed by the text attribute.
const IndexByText = "byText"

// Item is one stored row, attribute name to value. All note attributes are
// strings, which keeps the boundary identical across backends.
type Item map[string]string

// Key identifies a position in one of the table's orderings. For the
// primary ordering it carries pk and sk; for the byText index it
// additionally carries the text attribute, matching DynamoDB's
// LastEvaluatedKey shape for a local secondary index.
type Key map[string]string

// Query describes one range query over a partition.
type Query struct {
	// Index selects the ordering: empty for the primary sort key,
	// IndexByText for the search ordering.
	Index string

	// Partition is the partition attribute value; required.
	Partition string

	// SortPrefix is the begins_with condition applied to the active sort
	// attribute. Empty matches the whole partition.
	SortPrefix string

	// Ascending selects traversal direction over the active ordering.
	Ascending bool

	// StartKey resumes the traversal immediately after this position.
	// Nil starts from the beginning.
	StartKey Key

	// Limit caps the number of returned items; must be positive.
	Limit int
}

// Page is one slice of a range query's result.
type Page struct {
	Items []Item

	// LastKey is the resume position for the next page. Nil means the
	// traversal is exhausted.
	LastKey Key
}

// Table is the storage service consumed by the note store. All methods are
// safe for concurrent use; consistency of concurrent writes is delegated to
// the backing service's per-key atomicity.
type Table interface {
	// Get returns the item stored under key, or nil when absent. Absence is
	// a normal result, not an error.
	Get(ctx context.Context, key Key) (Item, error)

	// Put atomically stores item, overwriting any previous item with the
	// same primary key.
	Put(ctx context.Context, item Item) error

	// Query runs one range query and returns at most q.Limit items plus an
	// optional resume key.
	Query(ctx context.Context, q Query) (*Page, error)

	// Close releases the backing connection, if any.
	Close() error
}

// SortAttribute returns the attribute an index orders by.
func SortAttribute(index string) string {
	if index == IndexByText {
		return AttrText
	}
	return AttrSort
}
