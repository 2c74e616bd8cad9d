package feedback

import (
	"context"

	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
)

// Receipt is the service acknowledgement of one submission.
type Receipt struct {
	Message  string     `json:"message"`
	Analysis aspect.Set `json:"feedback_analysis"`
}

// Submitter is the remote feedback interface.
type Submitter interface {
	SubmitFeedback(ctx context.Context, id product.ID, text string) (Receipt, error)
}

// DraftResetter drops a product's draft once its feedback is accepted.
// ResetIf leaves the draft alone when it no longer holds the submitted text.
type DraftResetter interface {
	ResetIf(id product.ID, text string) bool
}
