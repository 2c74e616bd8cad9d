package comparison

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	domcmp "github.com/kailas-cloud/aspectmind/internal/domain/comparison"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	"github.com/kailas-cloud/aspectmind/internal/domain/state"
	"github.com/kailas-cloud/aspectmind/internal/metrics"
)

// Comparer is the remote comparison interface. It returns raw per-product aspect data.
type Comparer interface {
	Compare(ctx context.Context, ids []product.ID) ([]domcmp.ComparedProduct, error)
}

// Service requests comparison reports and derives the matrix and winners locally.
type Service struct {
	api    Comparer
	logger *zap.Logger

	mu  sync.Mutex
	st  state.State[domcmp.Report]
	gen uint64
}

// New creates a comparison engine. logger may be nil.
func New(api Comparer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger, st: state.NewIdle[domcmp.Report]()}
}

// Request compares 2..4 products. Out-of-range selections return
// domain.ErrSelectionSize without a network call or state change.
// Only the most recently issued request may commit its outcome.
func (s *Service) Request(ctx context.Context, ids []product.ID) (domcmp.Report, error) {
	if len(ids) < domain.MinCompare || len(ids) > domain.MaxSelection {
		return domcmp.Report{}, fmt.Errorf("compare %d products: %w", len(ids), domain.ErrSelectionSize)
	}
	sel := append([]product.ID(nil), ids...)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.st = state.NewLoading[domcmp.Report]()
	s.mu.Unlock()

	raw, err := s.api.Compare(ctx, sel)

	var report domcmp.Report
	var settled state.State[domcmp.Report]
	if err != nil {
		err = fmt.Errorf("compare: %w", err)
		settled = state.NewFailure[domcmp.Report](err)
	} else {
		report = domcmp.Build(sel, raw)
		settled = state.NewSuccess(report)
	}

	s.mu.Lock()
	current := s.gen == gen
	if current {
		s.st = settled
	}
	s.mu.Unlock()

	if !current {
		metrics.StaleResponsesTotal.WithLabelValues("comparison").Inc()
		s.logger.Debug("stale comparison discarded", zap.Int("products", len(sel)))
		return report, err
	}
	if err != nil {
		s.logger.Warn("comparison failed", zap.Int("products", len(sel)), zap.Error(err))
		return domcmp.Report{}, err
	}
	s.logger.Debug("comparison settled",
		zap.Int("products", report.Len()),
		zap.Int("aspects", len(report.Matrix())),
		zap.Ints("winners", report.Winners()),
	)
	return report, nil
}

// Reset returns to Idle and invalidates any outstanding request.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.st = state.NewIdle[domcmp.Report]()
}

// State returns the current comparison state.
func (s *Service) State() state.State[domcmp.Report] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}
