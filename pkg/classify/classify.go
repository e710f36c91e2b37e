// Package classify defines the sentiment classifier boundary and its
// implementations. The creation workflow calls a classifier at most once per
// note and never retries; transient failures surface to the caller and no
// note is written.
package classify

import (
	"context"

	"github.com/sentinote/sentinote/pkg/models"
)

// Classifier maps note text to a sentiment label. Implementations may be
// slow or fail; callers own timeout policy via ctx.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Sentiment, error)
}

// Func adapts an ordinary function to the Classifier interface, which keeps
// test doubles to a single line.
type Func func(ctx context.Context, text string) (models.Sentiment, error)

func (f Func) Classify(ctx context.Context, text string) (models.Sentiment, error) {
	return f(ctx, text)
}
