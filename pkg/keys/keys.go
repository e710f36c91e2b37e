// Package keys maps a note's logical identity onto its physical storage
// keys. Every note lives in a single partition so the whole collection can
// be listed with one range query; the sort key carries the note ID and the
// search key carries the note text, each with the ID bound in so that two
// different notes can never produce the same key.
//
// All functions here are pure and allocation-light; no storage types leak in.
package keys

import "strings"

const (
	// Partition is the fixed partition value shared by every note.
	Partition = "NOTE"

	// sortPrefix prefixes the note ID in the primary sort key.
	sortPrefix = "NOTE#"

	// separator joins note text and note ID in the search key.
	separator = "#"
)

// SortKey builds the primary sort key for a note ID: "NOTE#" + id.
func SortKey(id string) string {
	return sortPrefix + id
}

// SortKeyPrefix is the begins_with condition that selects every note in the
// partition when ranging over the primary ordering.
func SortKeyPrefix() string {
	return sortPrefix
}

// NoteIDFromSortKey recovers the note ID from a primary sort key by
// stripping the fixed prefix.
func NoteIDFromSortKey(sortKey string) string {
	return strings.TrimPrefix(sortKey, sortPrefix)
}

// SearchKey builds the secondary ordering key for prefix search:
// text + "#" + id. Appending the ID keeps search keys unique across notes
// and lets the ID be recovered at read time.
//
// Known limitation: "#" is not guaranteed absent from note text, so the
// search key does not unambiguously delimit text from ID. TextFromSearchKey
// is a best-effort inverse, correct unless the text itself ends with
// "#" + id.
func SearchKey(text, id string) string {
	return text + separator + id
}

// TextFromSearchKey recovers the note text from a search key by stripping
// the trailing "#" + id suffix. See the SearchKey caveat: this is only a
// best-effort inverse, not a provably safe one.
func TextFromSearchKey(searchKey, id string) string {
	return strings.TrimSuffix(searchKey, separator+id)
}
