package feedback

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	"github.com/kailas-cloud/aspectmind/internal/domain/state"
)

// Service submits per-product feedback and tracks each product's last outcome.
type Service struct {
	api    Submitter
	drafts DraftResetter
	logger *zap.Logger

	mu     sync.Mutex
	states map[product.ID]state.State[Receipt]
}

// New creates a feedback service. drafts and logger may be nil.
func New(api Submitter, drafts DraftResetter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		api:    api,
		drafts: drafts,
		logger: logger,
		states: make(map[product.ID]state.State[Receipt]),
	}
}

// Submit sends text as feedback for id. Blank text returns domain.ErrEmptyFeedback
// without a request. On success the product's draft is reset unless it was
// edited while the request was in flight.
func (s *Service) Submit(ctx context.Context, id product.ID, text string) (Receipt, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Receipt{}, fmt.Errorf("feedback for %s: %w", id, domain.ErrEmptyFeedback)
	}

	s.set(id, state.NewLoading[Receipt]())

	rc, err := s.api.SubmitFeedback(ctx, id, text)
	if err != nil {
		err = fmt.Errorf("submit feedback for %s: %w", id, err)
		s.set(id, state.NewFailure[Receipt](err))
		s.logger.Warn("feedback submission failed", zap.String("product_id", string(id)), zap.Error(err))
		return Receipt{}, err
	}

	s.set(id, state.NewSuccess(rc))
	reset := false
	if s.drafts != nil {
		reset = s.drafts.ResetIf(id, text)
	}
	s.logger.Info("feedback submitted",
		zap.String("product_id", string(id)),
		zap.Int("aspects", rc.Analysis.Len()),
		zap.Bool("draft_reset", reset),
	)
	return rc, nil
}

// State returns the last submission outcome for id.
func (s *Service) State(id product.ID) state.State[Receipt] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[id]
}

func (s *Service) set(id product.ID, st state.State[Receipt]) {
	s.mu.Lock()
	s.states[id] = st
	s.mu.Unlock()
}
