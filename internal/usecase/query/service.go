package query

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	domquery "github.com/kailas-cloud/aspectmind/internal/domain/search/query"
	"github.com/kailas-cloud/aspectmind/internal/domain/search/result"
	"github.com/kailas-cloud/aspectmind/internal/domain/state"
)

// Service owns the search lifecycle: Idle -> Loading -> {Success, Failure} -> Loading ...
type Service struct {
	searcher  Searcher
	filters   FilterSource
	selection SelectionClearer
	logger    *zap.Logger

	// identical snapshots submitted while one is in flight share its request
	group singleflight.Group

	mu        sync.Mutex
	st        state.State[result.Result]
	inflight  int
	lastQuery *domquery.Query
}

// New creates a query orchestrator. logger may be nil.
func New(searcher Searcher, filters FilterSource, selection SelectionClearer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		searcher:  searcher,
		filters:   filters,
		selection: selection,
		logger:    logger,
		st:        state.NewIdle[result.Result](),
	}
}

// Submit builds a snapshot from raw text and the current filters and runs one search.
// Blank text returns domain.ErrEmptyQuery without any request or state change.
// The selection is cleared on submission regardless of the outcome.
// A cancelled ctx abandons the wait, not a request shared with other callers.
// When searches race, the last response to arrive decides the final state.
func (s *Service) Submit(ctx context.Context, raw string) (result.Result, error) {
	q, err := domquery.New(raw, s.filters.Snapshot())
	if err != nil {
		return result.Result{}, err
	}

	s.mu.Lock()
	s.selection.Clear()
	s.inflight++
	s.st = state.NewLoading[result.Result]()
	s.mu.Unlock()

	// The shared call outlives any single caller; each caller still stops
	// waiting on its own ctx. The remote client timeout bounds the call.
	ch := s.group.DoChan(q.Key(), func() (any, error) {
		return s.searcher.Search(context.WithoutCancel(ctx), q)
	})
	var (
		v      any
		shared bool
	)
	select {
	case r := <-ch:
		v, err, shared = r.Val, r.Err, r.Shared
	case <-ctx.Done():
		err = ctx.Err()
	}

	var settled state.State[result.Result]
	var res result.Result
	if err != nil {
		err = fmt.Errorf("search %q: %w", q.Text(), err)
		settled = state.NewFailure[result.Result](err)
	} else {
		res = v.(result.Result)
		settled = state.NewSuccess(res)
	}

	s.mu.Lock()
	s.inflight--
	if s.inflight == 0 {
		s.st = settled
		s.lastQuery = &q
	}
	pending := s.inflight
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("search failed",
			zap.String("query", q.Text()),
			zap.Bool("shared", shared),
			zap.Error(err),
		)
		return result.Result{}, err
	}
	s.logger.Debug("search settled",
		zap.String("query", q.Text()),
		zap.String("sort_by", string(q.Sort())),
		zap.Int("products", res.Len()),
		zap.Bool("shared", shared),
		zap.Int("pending", pending),
	)
	return res, nil
}

// State returns the current search state.
func (s *Service) State() state.State[result.Result] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Result returns the settled result, if the last search succeeded.
func (s *Service) Result() (result.Result, bool) {
	return s.State().Value()
}

// WithResult calls fn with the settled result while holding the orchestrator
// lock, so no submission can clear the selection or replace the result until
// fn returns. fn must not call back into the Service.
func (s *Service) WithResult(fn func(res result.Result, ok bool) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.st.Value()
	return fn(res, ok)
}

// LastQuery returns the snapshot behind the committed state: the query whose
// response arrived last. It is unset until the first search settles.
func (s *Service) LastQuery() (domquery.Query, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastQuery == nil {
		return domquery.Query{}, false
	}
	return *s.lastQuery, true
}
