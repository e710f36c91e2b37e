package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/sentinote/sentinote/pkg/classify"
	"github.com/sentinote/sentinote/pkg/models"
)

// WorkflowState tags the stage a creation run is in. The pipeline is
// strictly ordered: Classifying, then Persisting, with no branching on
// success.
type WorkflowState string

const (
	StateClassifying WorkflowState = "classifying"
	StatePersisting  WorkflowState = "persisting"
	StateDone        WorkflowState = "done"
	StateFailed      WorkflowState = "failed"
)

// Workflow runs the two-step note creation pipeline: classify the text,
// then persist the fully-formed note. The ordering is the point of the
// pipeline - no half-classified note is ever stored. Failures are final:
// the workflow performs no retries and caches no classification results,
// so a failed persist loses the classification and a re-submission starts
// over from the classify step. That availability trade-off is deliberate.
type Workflow struct {
	store      *Store
	classifier classify.Classifier

	// Overridable in tests.
	now   func() time.Time
	newID func() models.NoteID
}

// NewWorkflow wires a workflow over store and classifier.
func NewWorkflow(store *Store, classifier classify.Classifier) *Workflow {
	return &Workflow{
		store:      store,
		classifier: classifier,
		now:        time.Now,
		newID:      models.NewNoteID,
	}
}

// creation is the run state of one pipeline execution.
type creation struct {
	state     WorkflowState
	text      string
	sentiment models.Sentiment
	note      *models.Note
	err       error
}

// step performs exactly one state transition. Keeping the transition
// separate from the driving loop makes the ordering testable without any
// execution substrate around it.
func (w *Workflow) step(ctx context.Context, c *creation) {
	switch c.state {
	case StateClassifying:
		sentiment, err := w.classifier.Classify(ctx, c.text)
		if err != nil {
			c.err = &ClassificationError{Cause: err}
			c.state = StateFailed
			return
		}
		c.sentiment = sentiment
		c.state = StatePersisting
	case StatePersisting:
		note := &models.Note{
			ID:        w.newID(),
			Text:      c.text,
			Sentiment: c.sentiment,
			CreatedAt: w.now().UTC(),
		}
		saved, err := w.store.Save(ctx, note)
		if err != nil {
			c.err = err
			c.state = StateFailed
			return
		}
		c.note = saved
		c.state = StateDone
	default:
		c.err = fmt.Errorf("workflow stepped in terminal state %q", c.state)
		c.state = StateFailed
	}
}

// Create runs the pipeline for text and returns the persisted note. The ID
// is generated and the creation time stamped only at the persist step, once
// classification has succeeded; a classification failure therefore leaves
// no trace in storage.
func (w *Workflow) Create(ctx context.Context, text string) (*models.Note, error) {
	if text == "" {
		return nil, invalidArgument("text", "must not be empty")
	}
	c := &creation{state: StateClassifying, text: text}
	for c.state != StateDone && c.state != StateFailed {
		w.step(ctx, c)
	}
	if c.state == StateFailed {
		return nil, c.err
	}
	return c.note, nil
}
