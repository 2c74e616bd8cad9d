package analytics

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domanalytics "github.com/kailas-cloud/aspectmind/internal/domain/analytics"
	"github.com/kailas-cloud/aspectmind/internal/domain/state"
)

// Fetcher is the remote analytics interface.
type Fetcher interface {
	Analytics(ctx context.Context) (domanalytics.Snapshot, error)
}

// Service loads the dataset summary on demand. Nothing is cached between loads.
type Service struct {
	api    Fetcher
	logger *zap.Logger

	mu sync.Mutex
	st state.State[domanalytics.Snapshot]
}

// New creates an analytics loader. logger may be nil.
func New(api Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger, st: state.NewIdle[domanalytics.Snapshot]()}
}

// Load fetches a fresh snapshot and replaces the current one on success.
// Failure leaves a retryable Failure state.
func (s *Service) Load(ctx context.Context) (domanalytics.Snapshot, error) {
	s.mu.Lock()
	s.st = state.NewLoading[domanalytics.Snapshot]()
	s.mu.Unlock()

	snap, err := s.api.Analytics(ctx)
	if err != nil {
		err = fmt.Errorf("load analytics: %w", err)
		s.mu.Lock()
		s.st = state.NewFailure[domanalytics.Snapshot](err)
		s.mu.Unlock()
		s.logger.Warn("analytics load failed", zap.Error(err))
		return domanalytics.Snapshot{}, err
	}

	s.mu.Lock()
	s.st = state.NewSuccess(snap.Clone())
	s.mu.Unlock()
	s.logger.Debug("analytics loaded",
		zap.Int("products", snap.TotalProducts),
		zap.Int("aspects", snap.TotalAspects),
	)
	return snap, nil
}

// State returns the current loader state.
func (s *Service) State() state.State[domanalytics.Snapshot] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.st.Value(); ok {
		return state.NewSuccess(v.Clone())
	}
	return s.st
}
