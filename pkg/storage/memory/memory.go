// Package memory provides an in-process [storage.Table] with the same range
// query semantics as the DynamoDB backend. It backs the unit tests and the
// `-backend memory` development mode, playing the role a fake server plays
// for an SDK: fast, deterministic, and no external process to stand up.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sentinote/sentinote/pkg/storage"
)

// Table is an in-memory implementation of storage.Table. Safe for
// concurrent use.
type Table struct {
	mu    sync.RWMutex
	items map[string]storage.Item
}

var _ storage.Table = (*Table)(nil)

// New returns an empty table.
func New() *Table {
	return &Table{items: map[string]storage.Item{}}
}

func primaryKey(pk, sk string) string {
	return pk + "\x00" + sk
}

func (t *Table) Get(ctx context.Context, key storage.Key) (storage.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, ok := t.items[primaryKey(key[storage.AttrPartition], key[storage.AttrSort])]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

func (t *Table) Put(ctx context.Context, item storage.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pk, sk := item[storage.AttrPartition], item[storage.AttrSort]
	if pk == "" || sk == "" {
		return fmt.Errorf("memory: item missing %s or %s attribute", storage.AttrPartition, storage.AttrSort)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[primaryKey(pk, sk)] = copyItem(item)
	return nil
}

func (t *Table) Query(ctx context.Context, q storage.Query) (*storage.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("memory: query limit must be positive, got %d", q.Limit)
	}
	sortAttr := storage.SortAttribute(q.Index)

	t.mu.RLock()
	matched := make([]storage.Item, 0, len(t.items))
	for _, item := range t.items {
		if item[storage.AttrPartition] != q.Partition {
			continue
		}
		sortVal, ok := item[sortAttr]
		if !ok {
			continue
		}
		if q.SortPrefix != "" && !hasPrefix(sortVal, q.SortPrefix) {
			continue
		}
		matched = append(matched, copyItem(item))
	}
	t.mu.RUnlock()

	// Order by the active sort attribute, tie-broken by the primary sort
	// key the way composite index keys behave.
	sort.Slice(matched, func(i, j int) bool {
		if q.Ascending {
			return position(matched[i], sortAttr).less(position(matched[j], sortAttr))
		}
		return position(matched[j], sortAttr).less(position(matched[i], sortAttr))
	})

	start := 0
	if q.StartKey != nil {
		after := keyPosition(q.StartKey, sortAttr)
		for start < len(matched) {
			p := position(matched[start], sortAttr)
			passed := p.less(after) || p == after
			if !q.Ascending {
				passed = after.less(p) || p == after
			}
			if !passed {
				break
			}
			start++
		}
	}

	page := &storage.Page{}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	page.Items = matched[start:end]

	// A resume key is handed out only when a further matching item exists,
	// so the final page never carries a cursor.
	if end < len(matched) {
		page.LastKey = lastKey(page.Items[len(page.Items)-1], q.Index)
	}
	return page, nil
}

func (t *Table) Close() error { return nil }

// Len reports the number of stored items, for tests.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// pos orders items by (sort attribute, primary sort key).
type pos struct {
	sortVal string
	sk      string
}

func (p pos) less(o pos) bool {
	if p.sortVal != o.sortVal {
		return p.sortVal < o.sortVal
	}
	return p.sk < o.sk
}

func position(item storage.Item, sortAttr string) pos {
	return pos{sortVal: item[sortAttr], sk: item[storage.AttrSort]}
}

func keyPosition(key storage.Key, sortAttr string) pos {
	return pos{sortVal: key[sortAttr], sk: key[storage.AttrSort]}
}

func lastKey(item storage.Item, index string) storage.Key {
	key := storage.Key{
		storage.AttrPartition: item[storage.AttrPartition],
		storage.AttrSort:      item[storage.AttrSort],
	}
	if index == storage.IndexByText {
		key[storage.AttrText] = item[storage.AttrText]
	}
	return key
}

func copyItem(item storage.Item) storage.Item {
	dup := make(storage.Item, len(item))
	for k, v := range item {
		dup[k] = v
	}
	return dup
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
