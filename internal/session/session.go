// Package session is the ownership root of one user's orchestration state.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	domanalytics "github.com/kailas-cloud/aspectmind/internal/domain/analytics"
	domcmp "github.com/kailas-cloud/aspectmind/internal/domain/comparison"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	domquery "github.com/kailas-cloud/aspectmind/internal/domain/search/query"
	"github.com/kailas-cloud/aspectmind/internal/domain/search/result"
	"github.com/kailas-cloud/aspectmind/internal/domain/state"
	"github.com/kailas-cloud/aspectmind/internal/usecase/analytics"
	"github.com/kailas-cloud/aspectmind/internal/usecase/annotation"
	"github.com/kailas-cloud/aspectmind/internal/usecase/comparison"
	"github.com/kailas-cloud/aspectmind/internal/usecase/feedback"
	"github.com/kailas-cloud/aspectmind/internal/usecase/filter"
	"github.com/kailas-cloud/aspectmind/internal/usecase/query"
	"github.com/kailas-cloud/aspectmind/internal/usecase/selection"
)

// API is everything a session needs from the analysis service.
type API interface {
	query.Searcher
	comparison.Comparer
	analytics.Fetcher
	annotation.Analyzer
	feedback.Submitter
}

// Options tunes a session.
type Options struct {
	// AnnotationQuiet is the debounce window for live analysis. <= 0 uses the default.
	AnnotationQuiet time.Duration
	Logger          *zap.Logger
}

// View is a consistent read of the session's settled state.
type View struct {
	ID             string
	Filters        domquery.Filters
	Selection      []product.ID
	CanCompare     bool
	LastQuery      string
	Search         state.State[result.Result]
	ComparisonOpen bool
	Comparison     state.State[domcmp.Report]
	DashboardOpen  bool
	Analytics      state.State[domanalytics.Snapshot]
}

// DraftView is the per-product feedback state.
type DraftView struct {
	Annotation annotation.Annotation
	Submission state.State[feedback.Receipt]
}

// Session wires the components together. Each component owns its own state;
// Session only holds the view flags.
type Session struct {
	id     string
	logger *zap.Logger

	filters    *filter.Controller
	selection  *selection.Set
	query      *query.Service
	comparison *comparison.Service
	analytics  *analytics.Service
	annotation *annotation.Engine
	feedback   *feedback.Service

	mu             sync.Mutex
	dashboardOpen  bool
	comparisonOpen bool
}

// New creates a session backed by api.
func New(id string, api API, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session_id", id))

	filters := filter.New()
	sel := selection.New()
	engine := annotation.New(api, logger.Named("annotation"), opts.AnnotationQuiet)
	return &Session{
		id:         id,
		logger:     logger,
		filters:    filters,
		selection:  sel,
		query:      query.New(api, filters, sel, logger.Named("query")),
		comparison: comparison.New(api, logger.Named("comparison")),
		analytics:  analytics.New(api, logger.Named("analytics")),
		annotation: engine,
		feedback:   feedback.New(api, engine, logger.Named("feedback")),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// SubmitSearch runs a search with the current filters. A new search closes the comparison view.
func (s *Session) SubmitSearch(ctx context.Context, text string) (result.Result, error) {
	if _, err := domquery.New(text, s.filters.Snapshot()); err != nil {
		return result.Result{}, err
	}
	s.closeComparison()
	return s.query.Submit(ctx, text)
}

// ToggleCategory selects category, or clears it if already selected.
func (s *Session) ToggleCategory(category string) { s.filters.ToggleCategory(category) }

// SetMinSentiment sets or clears (nil) the minimum sentiment threshold.
func (s *Session) SetMinSentiment(v *float64) error { return s.filters.SetMinSentiment(v) }

// SetSortMode sets the sort mode for the next search.
func (s *Session) SetSortMode(m domquery.SortMode) error { return s.filters.SetSort(m) }

// ClearFilters resets category, threshold and sort mode.
func (s *Session) ClearFilters() { s.filters.Clear() }

// ToggleProduct adds or removes id from the comparison selection.
// Only products of the current result set can be added.
func (s *Session) ToggleProduct(id product.ID) (bool, error) {
	var selected bool
	err := s.query.WithResult(func(res result.Result, ok bool) error {
		if !s.selection.Contains(id) && (!ok || !res.Contains(id)) {
			return fmt.Errorf("toggle %s: %w", id, domain.ErrUnknownProduct)
		}
		var err error
		selected, err = s.selection.Toggle(id)
		return err
	})
	return selected, err
}

// OpenComparison opens the comparison view and requests a report for the current selection.
// A selection outside [2, 4] is rejected before the view opens.
func (s *Session) OpenComparison(ctx context.Context) (domcmp.Report, error) {
	ids := s.selection.IDs()
	if len(ids) < domain.MinCompare || len(ids) > domain.MaxSelection {
		return domcmp.Report{}, fmt.Errorf("open comparison: %w", domain.ErrSelectionSize)
	}
	s.mu.Lock()
	s.comparisonOpen = true
	s.mu.Unlock()
	return s.comparison.Request(ctx, ids)
}

// CloseComparison hides the comparison view and discards its report.
func (s *Session) CloseComparison() { s.closeComparison() }

func (s *Session) closeComparison() {
	s.mu.Lock()
	s.comparisonOpen = false
	s.mu.Unlock()
	s.comparison.Reset()
}

// OpenDashboard opens the analytics view and loads a fresh snapshot.
func (s *Session) OpenDashboard(ctx context.Context) (domanalytics.Snapshot, error) {
	s.mu.Lock()
	s.dashboardOpen = true
	s.mu.Unlock()
	return s.analytics.Load(ctx)
}

// CloseDashboard hides the analytics view.
func (s *Session) CloseDashboard() {
	s.mu.Lock()
	s.dashboardOpen = false
	s.mu.Unlock()
}

// EditFeedback updates the feedback draft for id and schedules live analysis.
func (s *Session) EditFeedback(id product.ID, text string) { s.annotation.Edit(id, text) }

// SubmitFeedback sends the current draft for id.
func (s *Session) SubmitFeedback(ctx context.Context, id product.ID) (feedback.Receipt, error) {
	return s.feedback.Submit(ctx, id, s.annotation.Text(id))
}

// Draft returns the feedback state for id.
func (s *Session) Draft(id product.ID) DraftView {
	return DraftView{
		Annotation: s.annotation.Current(id),
		Submission: s.feedback.State(id),
	}
}

// View returns the current state of every component.
func (s *Session) View() View {
	s.mu.Lock()
	dashboard, cmpOpen := s.dashboardOpen, s.comparisonOpen
	s.mu.Unlock()

	v := View{
		ID:             s.id,
		Filters:        s.filters.Snapshot(),
		Selection:      s.selection.IDs(),
		CanCompare:     s.selection.CanCompare(),
		Search:         s.query.State(),
		ComparisonOpen: cmpOpen,
		Comparison:     s.comparison.State(),
		DashboardOpen:  dashboard,
		Analytics:      s.analytics.State(),
	}
	if q, ok := s.query.LastQuery(); ok {
		v.LastQuery = q.Text()
	}
	return v
}

// Close stops background analysis.
func (s *Session) Close() {
	s.annotation.Close()
}
