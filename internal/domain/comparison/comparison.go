package comparison

import (
	"math"

	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
)

// ComparedProduct is one product as returned by the comparison service.
type ComparedProduct struct {
	ID              product.ID
	Name            string
	Category        string
	Image           string
	Aspects         aspect.Set
	PositiveAspects []aspect.Scored
	NegativeAspects []aspect.Scored
	PositiveCount   int
	NegativeCount   int
	TotalAspects    int
}

// NetScore is positive minus negative aspect count.
func (p ComparedProduct) NetScore() int {
	return p.PositiveCount - p.NegativeCount
}

// PositiveShare returns the rounded percentage of aspects that are positive.
func (p ComparedProduct) PositiveShare() int {
	if p.TotalAspects <= 0 {
		return 0
	}
	return int(math.Round(float64(p.PositiveCount) / float64(p.TotalAspects) * 100))
}

// TopStrengths returns at most n positive aspects, strongest first as sent by the service.
func (p ComparedProduct) TopStrengths(n int) []aspect.Scored {
	if n > len(p.PositiveAspects) {
		n = len(p.PositiveAspects)
	}
	if n <= 0 {
		return nil
	}
	return append([]aspect.Scored(nil), p.PositiveAspects[:n]...)
}

// Cell is one product's judgement for one matrix row.
type Cell struct {
	Sentiment  aspect.Sentiment
	Confidence float64
}

// Available reports whether the product had data for the aspect.
// A missing cell differs from a genuine Neutral judgement.
func (c Cell) Available() bool { return c.Sentiment != aspect.NotAvailable }

var missingCell = Cell{Sentiment: aspect.NotAvailable}

// Row is one aspect across every compared product, indexed by product position.
type Row struct {
	Aspect string
	Cells  []Cell
}

// Cell returns the cell for product index i, or an N/A cell when out of range.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return missingCell
	}
	return r.Cells[i]
}

// Report is a settled comparison with its derived matrix and winners.
type Report struct {
	products []ComparedProduct
	matrix   []Row
	winners  []int
}

// Build orders products by selection, derives the aspect matrix and marks winners.
// Ids the service did not return are skipped; products not in the selection are dropped.
func Build(selection []product.ID, products []ComparedProduct) Report {
	byID := make(map[product.ID]ComparedProduct, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}
	ordered := make([]ComparedProduct, 0, len(selection))
	seen := make(map[product.ID]struct{}, len(selection))
	for _, id := range selection {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return Report{
		products: ordered,
		matrix:   buildMatrix(ordered),
		winners:  winners(ordered),
	}
}

// buildMatrix covers the union of aspect names, first-seen order across products.
func buildMatrix(products []ComparedProduct) []Row {
	var names []string
	seen := make(map[string]struct{})
	for _, p := range products {
		for _, n := range p.Aspects.Names() {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}

	rows := make([]Row, 0, len(names))
	for _, n := range names {
		cells := make([]Cell, len(products))
		for i, p := range products {
			sig, ok := p.Aspects.Get(n)
			if !ok {
				cells[i] = missingCell
				continue
			}
			cells[i] = Cell{Sentiment: sig.Sentiment, Confidence: sig.Confidence}
		}
		rows = append(rows, Row{Aspect: n, Cells: cells})
	}
	return rows
}

// winners returns every index whose net score equals the maximum.
func winners(products []ComparedProduct) []int {
	if len(products) == 0 {
		return nil
	}
	best := products[0].NetScore()
	for _, p := range products[1:] {
		if s := p.NetScore(); s > best {
			best = s
		}
	}
	var out []int
	for i, p := range products {
		if p.NetScore() == best {
			out = append(out, i)
		}
	}
	return out
}

// Products returns compared products in selection order.
func (r Report) Products() []ComparedProduct {
	return append([]ComparedProduct(nil), r.products...)
}

// Len returns the number of compared products.
func (r Report) Len() int { return len(r.products) }

// Matrix returns the aspect-by-product matrix.
func (r Report) Matrix() []Row {
	out := make([]Row, len(r.matrix))
	for i, row := range r.matrix {
		out[i] = Row{Aspect: row.Aspect, Cells: append([]Cell(nil), row.Cells...)}
	}
	return out
}

// Winners returns product indexes sharing the best net score. Ties yield several winners.
func (r Report) Winners() []int {
	return append([]int(nil), r.winners...)
}

// IsWinner reports whether product index i is a winner.
func (r Report) IsWinner(i int) bool {
	for _, w := range r.winners {
		if w == i {
			return true
		}
	}
	return false
}
