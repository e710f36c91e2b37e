// Package models defines the note entity and its identifier types shared by
// every layer of sentinote: the storage backends, the note store, the HTTP
// handlers and the API client.
package models

import "time"

// Sentiment is the label assigned to a note by the classifier. The set is
// closed; values outside it are rejected before a note is persisted.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentMixed    Sentiment = "MIXED"
)

// Valid reports whether s is one of the known sentiment labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return true
	}
	return false
}

// Note is the sole entity of the system. A note is created exactly once by
// the creation workflow, read any number of times, and never updated or
// deleted. Ordering between notes is derived from ID, which sorts
// lexicographically in creation order; CreatedAt is display metadata only.
type Note struct {
	ID        NoteID    `json:"id"`
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
	CreatedAt time.Time `json:"createdAt"`
}
