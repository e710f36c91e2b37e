package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoteIDMonotonic(t *testing.T) {
	prev := NewNoteID()
	for i := 0; i < 1000; i++ {
		next := NewNoteID()
		require.Greater(t, next.String(), prev.String(),
			"IDs must sort lexicographically in creation order")
		prev = next
	}
}

func TestParseNoteID(t *testing.T) {
	id := NewNoteID()
	parsed, err := ParseNoteID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseNoteID("not-a-ulid")
	assert.Error(t, err)

	_, err = ParseNoteID("")
	assert.Error(t, err)
}

func TestNoteIDJSON(t *testing.T) {
	id := NewNoteID()
	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(data))

	var decoded NoteID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	var bad NoteID
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &bad))
}

func TestSentimentValid(t *testing.T) {
	for _, s := range []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Sentiment("HAPPY").Valid())
	assert.False(t, Sentiment("").Valid())
}
