// Package surreal implements the [storage.Table] boundary on SurrealDB via
// the official Go SDK. Items are rows in one SurrealDB table, addressed by a
// record ID derived from the partition and sort keys so that Put is an
// upsert; the two required orderings are plain ORDER BY queries over the pk
// partition with composite resume conditions.
//
// The connection is configured with the surrealcbor codec, which keeps
// marshaling of strings and record IDs faithful to what the server stores.
package surreal

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/sentinote/sentinote/pkg/storage"
)

// Table implements storage.Table on a SurrealDB table.
type Table struct {
	db    *surrealdb.DB
	table string
}

var _ storage.Table = (*Table)(nil)

// row is the stored shape of an item. The boundary's attribute set is
// closed, so a fixed struct keeps the CBOR round trip unambiguous.
type row struct {
	PK        string `json:"pk"`
	SK        string `json:"sk"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	Sentiment string `json:"sentiment"`
}

// Connect dials a SurrealDB endpoint and returns a Table bound to table
// within the given namespace and database.
func Connect(ctx context.Context, wsURL, namespace, database, username, password, table string) (*Table, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("surreal: parse URL: %w", err)
	}

	conf := connection.NewConfig(u)
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	db, err := surrealdb.FromConnection(ctx, gorillaws.New(conf))
	if err != nil {
		return nil, fmt.Errorf("surreal: connect: %w", err)
	}
	if username != "" && password != "" {
		if _, err := db.SignIn(ctx, map[string]any{"user": username, "pass": password}); err != nil {
			return nil, fmt.Errorf("surreal: authenticate: %w", err)
		}
	}
	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("surreal: use %s/%s: %w", namespace, database, err)
	}
	return &Table{db: db, table: table}, nil
}

func recordID(key storage.Key) string {
	return key[storage.AttrPartition] + "|" + key[storage.AttrSort]
}

func (t *Table) Get(ctx context.Context, key storage.Key) (storage.Item, error) {
	result, err := surrealdb.Query[[]row](ctx, t.db,
		"SELECT pk, sk, text, createdAt, sentiment FROM type::thing($table, $id)",
		map[string]any{"table": t.table, "id": recordID(key)},
	)
	if err != nil {
		return nil, fmt.Errorf("surreal: get item: %w", err)
	}
	rows := firstResult(result)
	if len(rows) == 0 {
		return nil, nil
	}
	return itemFromRow(rows[0]), nil
}

func (t *Table) Put(ctx context.Context, item storage.Item) error {
	pk, sk := item[storage.AttrPartition], item[storage.AttrSort]
	if pk == "" || sk == "" {
		return fmt.Errorf("surreal: item missing %s or %s attribute", storage.AttrPartition, storage.AttrSort)
	}
	_, err := surrealdb.Query[any](ctx, t.db,
		"UPSERT type::thing($table, $id) CONTENT { pk: $pk, sk: $sk, text: $text, createdAt: $createdAt, sentiment: $sentiment }",
		map[string]any{
			"table":     t.table,
			"id":        recordID(storage.Key{storage.AttrPartition: pk, storage.AttrSort: sk}),
			"pk":        pk,
			"sk":        sk,
			"text":      item[storage.AttrText],
			"createdAt": item[storage.AttrCreatedAt],
			"sentiment": item[storage.AttrSentiment],
		},
	)
	if err != nil {
		return fmt.Errorf("surreal: put item: %w", err)
	}
	return nil
}

// buildQuery renders q as SurrealQL. It requests one extra row so the
// caller can decide whether a resume key is warranted.
func (t *Table) buildQuery(q storage.Query) (string, map[string]any, error) {
	if q.Limit <= 0 {
		return "", nil, fmt.Errorf("surreal: query limit must be positive, got %d", q.Limit)
	}
	sortAttr := storage.SortAttribute(q.Index)
	if sortAttr != storage.AttrSort && sortAttr != storage.AttrText {
		return "", nil, fmt.Errorf("surreal: unknown index %q", q.Index)
	}

	var b strings.Builder
	b.WriteString("SELECT pk, sk, text, createdAt, sentiment FROM type::table($table) WHERE pk = $pk")
	params := map[string]any{
		"table": t.table,
		"pk":    q.Partition,
		"limit": q.Limit + 1,
	}
	if q.SortPrefix != "" {
		fmt.Fprintf(&b, " AND string::starts_with(%s, $prefix)", sortAttr)
		params["prefix"] = q.SortPrefix
	}
	if q.StartKey != nil {
		// Composite exclusive-start condition over (sort attribute, sk).
		cmp, tie := ">", ">"
		if !q.Ascending {
			cmp, tie = "<", "<"
		}
		fmt.Fprintf(&b, " AND (%s %s $afterSort OR (%s = $afterSort AND sk %s $afterSK))",
			sortAttr, cmp, sortAttr, tie)
		params["afterSort"] = q.StartKey[sortAttr]
		params["afterSK"] = q.StartKey[storage.AttrSort]
	}
	dir := "ASC"
	if !q.Ascending {
		dir = "DESC"
	}
	fmt.Fprintf(&b, " ORDER BY %s %s, sk %s LIMIT $limit", sortAttr, dir, dir)
	return b.String(), params, nil
}

func (t *Table) Query(ctx context.Context, q storage.Query) (*storage.Page, error) {
	sql, params, err := t.buildQuery(q)
	if err != nil {
		return nil, err
	}

	result, err := surrealdb.Query[[]row](ctx, t.db, sql, params)
	if err != nil {
		return nil, fmt.Errorf("surreal: query: %w", err)
	}
	rows := firstResult(result)

	page := &storage.Page{}
	more := len(rows) > q.Limit
	if more {
		rows = rows[:q.Limit]
	}
	for _, r := range rows {
		page.Items = append(page.Items, itemFromRow(r))
	}
	if more {
		last := page.Items[len(page.Items)-1]
		page.LastKey = storage.Key{
			storage.AttrPartition: last[storage.AttrPartition],
			storage.AttrSort:      last[storage.AttrSort],
		}
		if q.Index == storage.IndexByText {
			page.LastKey[storage.AttrText] = last[storage.AttrText]
		}
	}
	return page, nil
}

func (t *Table) Close() error {
	return t.db.Close(context.Background())
}

func itemFromRow(r row) storage.Item {
	item := storage.Item{
		storage.AttrPartition: r.PK,
		storage.AttrSort:      r.SK,
	}
	if r.Text != "" {
		item[storage.AttrText] = r.Text
	}
	if r.CreatedAt != "" {
		item[storage.AttrCreatedAt] = r.CreatedAt
	}
	if r.Sentiment != "" {
		item[storage.AttrSentiment] = r.Sentiment
	}
	return item
}

func firstResult(result *[]surrealdb.QueryResult[[]row]) []row {
	if result == nil || len(*result) == 0 {
		return nil
	}
	return (*result)[0].Result
}
