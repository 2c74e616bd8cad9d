package analytics

// AspectStats counts sentiment mentions for one aspect across the dataset.
type AspectStats struct {
	Name     string `json:"name"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
	Total    int    `json:"total"`
}

// CategoryStats counts products and polar aspect mentions for one category.
type CategoryStats struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
}

// SentimentDistribution counts aspect mentions by label.
type SentimentDistribution struct {
	Positive int `json:"Positive"`
	Negative int `json:"Negative"`
	Neutral  int `json:"Neutral"`
}

// Total returns the number of mentions.
func (d SentimentDistribution) Total() int { return d.Positive + d.Negative + d.Neutral }

// Snapshot is a read-only aggregate summary of the dataset.
type Snapshot struct {
	TotalProducts  int                   `json:"total_products"`
	TotalAspects   int                   `json:"total_aspects"`
	TotalReviews   int                   `json:"total_reviews"`
	UniqueProducts int                   `json:"unique_products"`
	Distribution   SentimentDistribution `json:"sentiment_distribution"`
	TopAspects     []AspectStats         `json:"top_aspects"`
	TopCategories  []CategoryStats       `json:"top_categories"`
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.TopAspects = append([]AspectStats(nil), s.TopAspects...)
	out.TopCategories = append([]CategoryStats(nil), s.TopCategories...)
	return out
}
