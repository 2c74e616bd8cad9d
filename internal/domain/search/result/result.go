package result

import (
	"sort"

	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
)

// Overall is the aggregate sentiment of the query text.
type Overall struct {
	Label      aspect.Sentiment
	Confidence float64
}

// Result is one settled search response. It is replaced wholesale on each
// successful search and never mutated after construction.
type Result struct {
	overall    Overall
	signals    aspect.Set
	products   []product.Product
	categories []string
	index      map[product.ID]int
}

// New builds a Result. Available categories are the distinct categories of
// products, sorted.
func New(overall Overall, signals aspect.Set, products []product.Product) Result {
	ps := append([]product.Product(nil), products...)
	idx := make(map[product.ID]int, len(ps))
	seen := make(map[string]struct{})
	var cats []string
	for i, p := range ps {
		if _, ok := idx[p.ID()]; !ok {
			idx[p.ID()] = i
		}
		if p.Category() == "" {
			continue
		}
		if _, ok := seen[p.Category()]; !ok {
			seen[p.Category()] = struct{}{}
			cats = append(cats, p.Category())
		}
	}
	sort.Strings(cats)
	return Result{
		overall:    overall,
		signals:    signals,
		products:   ps,
		categories: cats,
		index:      idx,
	}
}

// Overall returns the aggregate query sentiment.
func (r Result) Overall() Overall { return r.overall }

// QuerySignals returns per-aspect signals extracted from the query text.
func (r Result) QuerySignals() aspect.Set { return r.signals }

// Products returns the ranked products.
func (r Result) Products() []product.Product {
	return append([]product.Product(nil), r.products...)
}

// Len returns the number of products.
func (r Result) Len() int { return len(r.products) }

// Categories returns the categories discoverable from this result.
func (r Result) Categories() []string {
	return append([]string(nil), r.categories...)
}

// Product looks up a product by id.
func (r Result) Product(id product.ID) (product.Product, bool) {
	i, ok := r.index[id]
	if !ok {
		return product.Product{}, false
	}
	return r.products[i], true
}

// Contains reports whether id is part of this result.
func (r Result) Contains(id product.ID) bool {
	_, ok := r.index[id]
	return ok
}
