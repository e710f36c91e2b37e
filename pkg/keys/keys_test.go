package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortKeyRoundTrip(t *testing.T) {
	const id = "01HZXW5ZJ4R1V0T8YQ2M3N4P5Q"
	sk := SortKey(id)
	assert.Equal(t, "NOTE#"+id, sk)
	assert.Equal(t, id, NoteIDFromSortKey(sk))
}

func TestSearchKeyRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		text string
		id   string
	}{
		{"plain", "hello world", "01A"},
		{"empty text", "", "01A"},
		{"hash inside text", "tag #one and #two", "01B"},
		{"unicode", "café ☕", "01C"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key := SearchKey(tc.text, tc.id)
			assert.Equal(t, tc.text+"#"+tc.id, key)
			assert.Equal(t, tc.text, TextFromSearchKey(key, tc.id))
		})
	}
}

// The separator is not escaped, so the search key alone does not delimit
// text from ID; recovery requires the ID to know where to cut. Suffix
// stripping removes exactly the one appended "#"+id, so texts with embedded
// or even trailing separators still survive the round trip.
func TestSearchKeySeparatorCollisions(t *testing.T) {
	const id = "01A"
	for _, text := range []string{"tricky#01A", "#01A", "ends with #"} {
		key := SearchKey(text, id)
		assert.Equal(t, text, TextFromSearchKey(key, id), "text %q", text)
	}

	// Without the ID the cut point is ambiguous: these two distinct notes
	// produce keys whose textual split cannot be inferred from the key alone.
	assert.Equal(t, SearchKey("a#01B", "01C")[:5], SearchKey("a", "01B")[:5])
}

func TestSortKeyPrefixSelectsAllNotes(t *testing.T) {
	assert.Equal(t, "NOTE#", SortKeyPrefix())
	assert.Contains(t, SortKey("X"), SortKeyPrefix())
}
