package product

import (
	"strings"

	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
)

// ID is an opaque product identifier assigned by the analysis service.
type ID string

// Product is one ranked search hit. Read-only for the lifetime of a search result.
type Product struct {
	id             ID
	name           string
	category       string
	image          string
	matchScore     float64
	sentimentScore float64
	topPositive    []aspect.Scored
	topNegative    []aspect.Scored
	matched        []string
	reason         string
	aspects        aspect.Set
}

// Fields is the construction input for a Product.
type Fields struct {
	ID             ID
	Name           string
	Category       string
	Image          string
	MatchScore     float64
	SentimentScore float64
	TopPositive    []aspect.Scored
	TopNegative    []aspect.Scored
	MatchedAspects []string
	Reason         string
	Aspects        aspect.Set
}

// New builds a Product. The image URL is normalized and the match score clamped to [0, 1].
func New(f Fields) Product {
	score := f.MatchScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Product{
		id:             f.ID,
		name:           f.Name,
		category:       f.Category,
		image:          NormalizeImage(f.Image),
		matchScore:     score,
		sentimentScore: f.SentimentScore,
		topPositive:    append([]aspect.Scored(nil), f.TopPositive...),
		topNegative:    append([]aspect.Scored(nil), f.TopNegative...),
		matched:        append([]string(nil), f.MatchedAspects...),
		reason:         f.Reason,
		aspects:        f.Aspects,
	}
}

// NormalizeImage returns the URL if it is usable, or "" when the service sent
// a placeholder ("nan", "null", empty) or a non-http value.
func NormalizeImage(raw string) string {
	img := strings.TrimSpace(raw)
	switch img {
	case "", "nan", "null", "None":
		return ""
	}
	if !strings.HasPrefix(img, "http") {
		return ""
	}
	return img
}

// ID returns the product identifier.
func (p Product) ID() ID { return p.id }

// Name returns the display name.
func (p Product) Name() string { return p.name }

// Category returns the product category.
func (p Product) Category() string { return p.category }

// MatchScore returns the relevance score against the query, in [0, 1].
func (p Product) MatchScore() float64 { return p.matchScore }

// SentimentScore returns the aggregate review sentiment used by sentiment sort.
func (p Product) SentimentScore() float64 { return p.sentimentScore }

// Reason returns the service's short explanation for the recommendation.
func (p Product) Reason() string { return p.reason }

// Aspects returns every aspect the service knows for this product.
func (p Product) Aspects() aspect.Set { return p.aspects }

// Image returns the product image URL, or "" when none is available.
func (p Product) Image() string { return p.image }

// HasImage reports whether a usable image URL is present.
func (p Product) HasImage() bool { return p.image != "" }

// TopPositive returns the strongest positive aspects, strongest first.
func (p Product) TopPositive() []aspect.Scored {
	return append([]aspect.Scored(nil), p.topPositive...)
}

// TopNegative returns the strongest negative aspects, strongest first.
func (p Product) TopNegative() []aspect.Scored {
	return append([]aspect.Scored(nil), p.topNegative...)
}

// MatchedAspects returns the query aspects this product is positively reviewed for.
func (p Product) MatchedAspects() []string {
	return append([]string(nil), p.matched...)
}
