package models

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// NoteID is a typed identifier for notes, backed by a ULID so that IDs sort
// lexicographically in creation order. That ordering is what makes the
// primary sort key usable for newest-first listing without a separate
// timestamp attribute.
type NoteID struct {
	ulid ulid.ULID
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewNoteID generates a fresh NoteID. IDs generated within the same
// millisecond remain strictly increasing thanks to the monotonic entropy
// source.
func NewNoteID() NoteID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return NoteID{ulid: ulid.MustNew(ulid.Timestamp(time.Now()), entropy)}
}

// ParseNoteID parses the canonical 26-character ULID string form.
func ParseNoteID(s string) (NoteID, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return NoteID{}, fmt.Errorf("invalid note ID: %w", err)
	}
	return NoteID{ulid: id}, nil
}

func (id NoteID) String() string { return id.ulid.String() }
func (id NoteID) IsZero() bool   { return id.ulid == ulid.ULID{} }

// Time returns the creation instant encoded in the ID.
func (id NoteID) Time() time.Time {
	return ulid.Time(id.ulid.Time())
}

func (id NoteID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.ulid.String())
}

func (id *NoteID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ulid.ParseStrict(s)
	if err != nil {
		return err
	}
	id.ulid = parsed
	return nil
}
