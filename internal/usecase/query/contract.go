package query

import (
	"context"

	domquery "github.com/kailas-cloud/aspectmind/internal/domain/search/query"
	"github.com/kailas-cloud/aspectmind/internal/domain/search/result"
)

// Searcher is the remote search interface.
type Searcher interface {
	Search(ctx context.Context, q domquery.Query) (result.Result, error)
}

// FilterSource provides the filters applied on submission.
type FilterSource interface {
	Snapshot() domquery.Filters
}

// SelectionClearer resets selections scoped to the previous result set.
type SelectionClearer interface {
	Clear()
}
