package filter

import (
	"math"
	"sync"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	"github.com/kailas-cloud/aspectmind/internal/domain/search/query"
)

// Controller holds browsing filter state. Changing it never issues a request;
// the query orchestrator reads Snapshot on the next submission.
type Controller struct {
	mu sync.Mutex
	f  query.Filters
}

// New creates a controller in the cleared state.
func New() *Controller {
	return &Controller{f: query.DefaultFilters()}
}

// SetCategory selects a category ("" = any).
func (c *Controller) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.f.Category = category
}

// ToggleCategory selects category, or deselects it when already selected.
func (c *Controller) ToggleCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.f.Category == category {
		c.f.Category = ""
		return
	}
	c.f.Category = category
}

// SetMinSentiment sets the threshold; nil removes it. NaN is out of range.
func (c *Controller) SetMinSentiment(v *float64) error {
	if v != nil && (math.IsNaN(*v) || *v < -1 || *v > 1) {
		return domain.ErrInvalidSentiment
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v == nil {
		c.f.MinSentiment = nil
		return nil
	}
	val := *v
	c.f.MinSentiment = &val
	return nil
}

// SetSort sets the sort mode.
func (c *Controller) SetSort(m query.SortMode) error {
	if !m.IsValid() {
		return domain.ErrInvalidSortMode
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.f.Sort = m
	return nil
}

// Clear resets to no category, no threshold, relevance sort.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.f = query.DefaultFilters()
}

// Snapshot returns a copy of the current filters.
func (c *Controller) Snapshot() query.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.f.Clone()
}
