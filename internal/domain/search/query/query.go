package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/aspectmind/internal/domain"
)

// SortMode orders search results.
type SortMode string

// Sort modes understood by the analysis service.
const (
	// Relevance orders by match score (default).
	Relevance SortMode = "relevance"
	// BySentiment orders by aggregate review sentiment.
	BySentiment SortMode = "sentiment"
	// ByName orders alphabetically by display name.
	ByName SortMode = "name"
)

// IsValid checks if the mode is one of the supported values.
func (m SortMode) IsValid() bool {
	return m == Relevance || m == BySentiment || m == ByName
}

// ParseSortMode parses a sort mode. Empty input yields Relevance.
func ParseSortMode(s string) (SortMode, error) {
	m := SortMode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return Relevance, nil
	}
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSortMode, s)
	}
	return m, nil
}

// Filters are the user-selected request parameters applied on submission.
type Filters struct {
	Category     string   // "" = any category
	MinSentiment *float64 // nil = no threshold
	Sort         SortMode
}

// DefaultFilters returns the cleared filter state.
func DefaultFilters() Filters {
	return Filters{Sort: Relevance}
}

// Clone returns a deep copy.
func (f Filters) Clone() Filters {
	out := f
	if f.MinSentiment != nil {
		v := *f.MinSentiment
		out.MinSentiment = &v
	}
	return out
}

// Query is an immutable search snapshot built at submission time.
type Query struct {
	text    string
	filters Filters
}

// New validates raw text and filters into a Query.
func New(raw string, f Filters) (Query, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	if f.Sort == "" {
		f.Sort = Relevance
	}
	if !f.Sort.IsValid() {
		return Query{}, fmt.Errorf("%w: %q", domain.ErrInvalidSortMode, f.Sort)
	}
	if f.MinSentiment != nil && (math.IsNaN(*f.MinSentiment) || *f.MinSentiment < -1 || *f.MinSentiment > 1) {
		return Query{}, domain.ErrInvalidSentiment
	}
	return Query{text: text, filters: f.Clone()}, nil
}

// Text returns the trimmed query text.
func (q Query) Text() string { return q.text }

// Category returns the category filter ("" when unset).
func (q Query) Category() string { return q.filters.Category }

// MinSentiment returns the sentiment threshold and whether it is set.
func (q Query) MinSentiment() (float64, bool) {
	if q.filters.MinSentiment == nil {
		return 0, false
	}
	return *q.filters.MinSentiment, true
}

// Sort returns the sort mode.
func (q Query) Sort() SortMode { return q.filters.Sort }

// Key identifies equal snapshots; two submissions with the same key are duplicates.
func (q Query) Key() string {
	var b strings.Builder
	b.WriteString(q.text)
	b.WriteByte(0)
	b.WriteString(q.filters.Category)
	b.WriteByte(0)
	if v, ok := q.MinSentiment(); ok {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(0)
	b.WriteString(string(q.filters.Sort))
	return b.String()
}
