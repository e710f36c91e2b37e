package surreal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinote/sentinote/pkg/storage"
)

func TestBuildQueryDescendingPrimary(t *testing.T) {
	tbl := &Table{table: "notes"}
	sql, params, err := tbl.buildQuery(storage.Query{
		Partition:  "NOTE",
		SortPrefix: "NOTE#",
		Ascending:  false,
		Limit:      25,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT pk, sk, text, createdAt, sentiment FROM type::table($table) WHERE pk = $pk"+
			" AND string::starts_with(sk, $prefix)"+
			" ORDER BY sk DESC, sk DESC LIMIT $limit",
		sql)
	assert.Equal(t, "notes", params["table"])
	assert.Equal(t, "NOTE", params["pk"])
	assert.Equal(t, "NOTE#", params["prefix"])
	assert.Equal(t, 26, params["limit"], "one extra row to detect whether more remain")
}

func TestBuildQueryAscendingTextIndexWithResume(t *testing.T) {
	tbl := &Table{table: "notes"}
	sql, params, err := tbl.buildQuery(storage.Query{
		Index:      storage.IndexByText,
		Partition:  "NOTE",
		SortPrefix: "hello",
		Ascending:  true,
		Limit:      1,
		StartKey: storage.Key{
			storage.AttrPartition: "NOTE",
			storage.AttrSort:      "NOTE#01ARZ",
			storage.AttrText:      "hello there#01ARZ",
		},
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "string::starts_with(text, $prefix)")
	assert.Contains(t, sql, "(text > $afterSort OR (text = $afterSort AND sk > $afterSK))")
	assert.Contains(t, sql, "ORDER BY text ASC, sk ASC")
	assert.Equal(t, "hello there#01ARZ", params["afterSort"])
	assert.Equal(t, "NOTE#01ARZ", params["afterSK"])
}

func TestBuildQueryDescendingResumeFlipsComparisons(t *testing.T) {
	tbl := &Table{table: "notes"}
	sql, _, err := tbl.buildQuery(storage.Query{
		Partition: "NOTE",
		Ascending: false,
		Limit:     2,
		StartKey: storage.Key{
			storage.AttrPartition: "NOTE",
			storage.AttrSort:      "NOTE#01ARZ",
		},
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "(sk < $afterSort OR (sk = $afterSort AND sk < $afterSK))")
}

func TestBuildQueryRejectsBadInput(t *testing.T) {
	tbl := &Table{table: "notes"}

	_, _, err := tbl.buildQuery(storage.Query{Partition: "NOTE", Limit: 0})
	assert.Error(t, err)

	_, _, err = tbl.buildQuery(storage.Query{Partition: "NOTE", Limit: 5, Index: "bySentiment"})
	assert.Error(t, err)
}

func TestRecordID(t *testing.T) {
	key := storage.Key{
		storage.AttrPartition: "NOTE",
		storage.AttrSort:      "NOTE#01ARZ",
	}
	assert.Equal(t, "NOTE|NOTE#01ARZ", recordID(key))
}

func TestItemFromRowOmitsEmptyAttributes(t *testing.T) {
	item := itemFromRow(row{PK: "NOTE", SK: "NOTE#01ARZ"})
	assert.Equal(t, storage.Item{
		storage.AttrPartition: "NOTE",
		storage.AttrSort:      "NOTE#01ARZ",
	}, item)

	full := itemFromRow(row{
		PK: "NOTE", SK: "NOTE#01ARZ",
		Text: "hi#01ARZ", CreatedAt: "2026-01-02T03:04:05Z", Sentiment: "NEUTRAL",
	})
	assert.Equal(t, "hi#01ARZ", full[storage.AttrText])
	assert.Equal(t, "NEUTRAL", full[storage.AttrSentiment])
}
