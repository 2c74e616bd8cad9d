package remote

import (
	domanalytics "github.com/kailas-cloud/aspectmind/internal/domain/analytics"
	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	domcmp "github.com/kailas-cloud/aspectmind/internal/domain/comparison"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	"github.com/kailas-cloud/aspectmind/internal/domain/search/result"
)

type overallDTO struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// explanationDTO is one entry of "results"; it is index-aligned with "raw_recs".
type explanationDTO struct {
	Product        string          `json:"product"`
	MatchedAspects []string        `json:"matched_aspects"`
	TopPosAspects  []aspect.Scored `json:"top_pos_aspects"`
	TopNegAspects  []aspect.Scored `json:"top_neg_aspects"`
	Reason         string          `json:"reason"`
	AllAspects     aspect.Set      `json:"all_aspects"`
}

type recDTO struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	Image          string     `json:"image"`
	Score          float64    `json:"score"`
	SentimentScore float64    `json:"sentiment_score"`
	Aspects        aspect.Set `json:"aspects"`
}

type searchResponse struct {
	QueryAnalysis       aspect.Set       `json:"query_analysis"`
	OverallSentiment    overallDTO       `json:"overall_sentiment"`
	Results             []explanationDTO `json:"results"`
	RawRecs             []recDTO         `json:"raw_recs"`
	AvailableCategories []string         `json:"available_categories"`
}

// toResult zips raw_recs with their explanations. Missing explanations leave
// the explanation fields empty; surplus explanations without a record are dropped.
func (r searchResponse) toResult() result.Result {
	products := make([]product.Product, 0, len(r.RawRecs))
	for i, rec := range r.RawRecs {
		f := product.Fields{
			ID:             product.ID(rec.ID),
			Name:           rec.Name,
			Category:       rec.Category,
			Image:          rec.Image,
			MatchScore:     rec.Score,
			SentimentScore: rec.SentimentScore,
			Aspects:        rec.Aspects,
		}
		if i < len(r.Results) {
			ex := r.Results[i]
			f.TopPositive = ex.TopPosAspects
			f.TopNegative = ex.TopNegAspects
			f.MatchedAspects = ex.MatchedAspects
			f.Reason = ex.Reason
			if ex.AllAspects.Len() > 0 {
				f.Aspects = ex.AllAspects
			}
		}
		products = append(products, product.New(f))
	}
	overall := result.Overall{
		Label:      aspect.ParseSentiment(r.OverallSentiment.Label),
		Confidence: r.OverallSentiment.Confidence,
	}
	return result.New(overall, r.QueryAnalysis, products)
}

type compareRequest struct {
	ProductIDs []string `json:"product_ids"`
}

type comparedDTO struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Image           string          `json:"image"`
	AllAspects      aspect.Set      `json:"all_aspects"`
	PositiveAspects []aspect.Scored `json:"positive_aspects"`
	NegativeAspects []aspect.Scored `json:"negative_aspects"`
	PositiveCount   int             `json:"positive_count"`
	NegativeCount   int             `json:"negative_count"`
	TotalAspects    int             `json:"total_aspects"`
}

// compareResponse ignores the service-side aspect_matrix; the matrix is derived locally.
type compareResponse struct {
	Error    string        `json:"error"`
	Products []comparedDTO `json:"products"`
}

func (r compareResponse) toCompared() []domcmp.ComparedProduct {
	out := make([]domcmp.ComparedProduct, len(r.Products))
	for i, p := range r.Products {
		out[i] = domcmp.ComparedProduct{
			ID:              product.ID(p.ID),
			Name:            p.Name,
			Category:        p.Category,
			Image:           product.NormalizeImage(p.Image),
			Aspects:         p.AllAspects,
			PositiveAspects: p.PositiveAspects,
			NegativeAspects: p.NegativeAspects,
			PositiveCount:   p.PositiveCount,
			NegativeCount:   p.NegativeCount,
			TotalAspects:    p.TotalAspects,
		}
	}
	return out
}

type datasetInfoDTO struct {
	TotalReviews   int `json:"total_reviews"`
	UniqueProducts int `json:"unique_products"`
}

type analyticsResponse struct {
	TotalProducts         int                                `json:"total_products"`
	TotalAspects          int                                `json:"total_aspects"`
	SentimentDistribution domanalytics.SentimentDistribution `json:"sentiment_distribution"`
	TopAspects            []domanalytics.AspectStats         `json:"top_aspects"`
	TopCategories         []domanalytics.CategoryStats       `json:"top_categories"`
	DatasetInfo           datasetInfoDTO                     `json:"dataset_info"`
}

func (r analyticsResponse) toSnapshot() domanalytics.Snapshot {
	return domanalytics.Snapshot{
		TotalProducts:  r.TotalProducts,
		TotalAspects:   r.TotalAspects,
		TotalReviews:   r.DatasetInfo.TotalReviews,
		UniqueProducts: r.DatasetInfo.UniqueProducts,
		Distribution:   r.SentimentDistribution,
		TopAspects:     r.TopAspects,
		TopCategories:  r.TopCategories,
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type feedbackRequest struct {
	ProductID string `json:"product_id"`
	Feedback  string `json:"feedback"`
}

type feedbackResponse struct {
	Status           string     `json:"status"`
	Message          string     `json:"message"`
	FeedbackAnalysis aspect.Set `json:"feedback_analysis"`
}

type rootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
