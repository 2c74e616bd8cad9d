package chi

import (
	"github.com/kailas-cloud/aspectmind/internal/domain"
	domanalytics "github.com/kailas-cloud/aspectmind/internal/domain/analytics"
	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	domcmp "github.com/kailas-cloud/aspectmind/internal/domain/comparison"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	domquery "github.com/kailas-cloud/aspectmind/internal/domain/search/query"
	"github.com/kailas-cloud/aspectmind/internal/domain/search/result"
	"github.com/kailas-cloud/aspectmind/internal/domain/state"
	"github.com/kailas-cloud/aspectmind/internal/session"
	"github.com/kailas-cloud/aspectmind/internal/usecase/feedback"
)

// topStrengths is how many positive aspects the comparison cards show.
const topStrengths = 5

type phaseDTO struct {
	Phase state.Phase `json:"phase"`
	Error string      `json:"error,omitempty"`
}

func phaseOf[T any](st state.State[T]) phaseDTO {
	return phaseDTO{Phase: st.Phase(), Error: domain.UserMessage(st.Err())}
}

type filtersDTO struct {
	Category     *string  `json:"category"`
	MinSentiment *float64 `json:"min_sentiment"`
	SortBy       string   `json:"sort_by"`
}

func filtersToDTO(f domquery.Filters) filtersDTO {
	out := filtersDTO{MinSentiment: f.MinSentiment, SortBy: string(f.Sort)}
	if f.Category != "" {
		c := f.Category
		out.Category = &c
	}
	if out.SortBy == "" {
		out.SortBy = string(domquery.Relevance)
	}
	return out
}

type overallDTO struct {
	Label      aspect.Sentiment `json:"label"`
	Confidence float64          `json:"confidence"`
}

type productDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Image          *string         `json:"image"`
	MatchScore     float64         `json:"match_score"`
	SentimentScore float64         `json:"sentiment_score"`
	TopPositive    []aspect.Scored `json:"top_positive_aspects"`
	TopNegative    []aspect.Scored `json:"top_negative_aspects"`
	MatchedAspects []string        `json:"matched_aspects"`
	Reason         string          `json:"reason"`
	Aspects        aspect.Set      `json:"aspects"`
}

type searchDTO struct {
	phaseDTO
	OverallSentiment    *overallDTO  `json:"overall_sentiment,omitempty"`
	QueryAnalysis       *aspect.Set  `json:"query_analysis,omitempty"`
	Products            []productDTO `json:"products,omitempty"`
	AvailableCategories []string     `json:"available_categories,omitempty"`
}

func productToDTO(p product.Product) productDTO {
	out := productDTO{
		ID:             string(p.ID()),
		Name:           p.Name(),
		Category:       p.Category(),
		MatchScore:     p.MatchScore(),
		SentimentScore: p.SentimentScore(),
		TopPositive:    nonNil(p.TopPositive()),
		TopNegative:    nonNil(p.TopNegative()),
		MatchedAspects: nonNil(p.MatchedAspects()),
		Reason:         p.Reason(),
		Aspects:        p.Aspects(),
	}
	if p.HasImage() {
		img := p.Image()
		out.Image = &img
	}
	return out
}

func searchToDTO(st state.State[result.Result]) searchDTO {
	out := searchDTO{phaseDTO: phaseOf(st)}
	res, ok := st.Value()
	if !ok {
		return out
	}
	signals := res.QuerySignals()
	out.OverallSentiment = &overallDTO{Label: res.Overall().Label, Confidence: res.Overall().Confidence}
	out.QueryAnalysis = &signals
	out.Products = make([]productDTO, 0, res.Len())
	for _, p := range res.Products() {
		out.Products = append(out.Products, productToDTO(p))
	}
	out.AvailableCategories = nonNil(res.Categories())
	return out
}

type comparedDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Image         *string         `json:"image"`
	PositiveCount int             `json:"positive_count"`
	NegativeCount int             `json:"negative_count"`
	TotalAspects  int             `json:"total_aspects"`
	NetScore      int             `json:"net_score"`
	PositiveShare int             `json:"positive_share"`
	TopStrengths  []aspect.Scored `json:"top_strengths"`
	Weaknesses    []aspect.Scored `json:"weaknesses"`
	Winner        bool            `json:"winner"`
}

type cellDTO struct {
	Sentiment  aspect.Sentiment `json:"sentiment"`
	Confidence float64          `json:"confidence"`
}

type rowDTO struct {
	Aspect string    `json:"aspect"`
	Cells  []cellDTO `json:"cells"`
}

type reportDTO struct {
	Products []comparedDTO `json:"products"`
	Matrix   []rowDTO      `json:"aspect_matrix"`
	Winners  []int         `json:"winners"`
}

func reportToDTO(r domcmp.Report) reportDTO {
	out := reportDTO{
		Products: make([]comparedDTO, 0, r.Len()),
		Matrix:   []rowDTO{},
		Winners:  nonNil(r.Winners()),
	}
	for i, p := range r.Products() {
		d := comparedDTO{
			ID:            string(p.ID),
			Name:          p.Name,
			Category:      p.Category,
			PositiveCount: p.PositiveCount,
			NegativeCount: p.NegativeCount,
			TotalAspects:  p.TotalAspects,
			NetScore:      p.NetScore(),
			PositiveShare: p.PositiveShare(),
			TopStrengths:  nonNil(p.TopStrengths(topStrengths)),
			Weaknesses:    nonNil(p.NegativeAspects),
			Winner:        r.IsWinner(i),
		}
		if p.Image != "" {
			img := p.Image
			d.Image = &img
		}
		out.Products = append(out.Products, d)
	}
	for _, row := range r.Matrix() {
		cells := make([]cellDTO, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = cellDTO{Sentiment: c.Sentiment, Confidence: c.Confidence}
		}
		out.Matrix = append(out.Matrix, rowDTO{Aspect: row.Aspect, Cells: cells})
	}
	return out
}

type comparisonDTO struct {
	phaseDTO
	Open   bool       `json:"open"`
	Report *reportDTO `json:"report,omitempty"`
}

type dashboardDTO struct {
	phaseDTO
	Open     bool                   `json:"open"`
	Snapshot *domanalytics.Snapshot `json:"snapshot,omitempty"`
}

type selectionDTO struct {
	Selected   bool     `json:"selected"`
	Selection  []string `json:"selection"`
	CanCompare bool     `json:"can_compare"`
}

type viewDTO struct {
	ID         string        `json:"id"`
	LastQuery  string        `json:"last_query,omitempty"`
	Filters    filtersDTO    `json:"filters"`
	Selection  []string      `json:"selection"`
	CanCompare bool          `json:"can_compare"`
	Search     searchDTO     `json:"search"`
	Comparison comparisonDTO `json:"comparison"`
	Dashboard  dashboardDTO  `json:"dashboard"`
}

func viewToDTO(v session.View) viewDTO {
	out := viewDTO{
		ID:         v.ID,
		LastQuery:  v.LastQuery,
		Filters:    filtersToDTO(v.Filters),
		Selection:  idsToStrings(v.Selection),
		CanCompare: v.CanCompare,
		Search:     searchToDTO(v.Search),
		Comparison: comparisonDTO{phaseDTO: phaseOf(v.Comparison), Open: v.ComparisonOpen},
		Dashboard:  dashboardDTO{phaseDTO: phaseOf(v.Analytics), Open: v.DashboardOpen},
	}
	if rep, ok := v.Comparison.Value(); ok {
		d := reportToDTO(rep)
		out.Comparison.Report = &d
	}
	if snap, ok := v.Analytics.Value(); ok {
		out.Dashboard.Snapshot = &snap
	}
	return out
}

type annotationDTO struct {
	ForText   string     `json:"for_text"`
	Signals   aspect.Set `json:"signals"`
	Stale     bool       `json:"stale"`
	Analyzing bool       `json:"analyzing"`
	Error     string     `json:"error,omitempty"`
}

type draftDTO struct {
	Text       string            `json:"text"`
	Annotation annotationDTO     `json:"annotation"`
	Submission phaseDTO          `json:"submission"`
	Receipt    *feedback.Receipt `json:"receipt,omitempty"`
}

func draftToDTO(d session.DraftView) draftDTO {
	a := d.Annotation
	out := draftDTO{
		Text: a.Text,
		Annotation: annotationDTO{
			ForText:   a.ForText,
			Signals:   a.Signals,
			Stale:     a.Stale(),
			Analyzing: a.Analyzing,
			Error:     domain.UserMessage(a.Err),
		},
		Submission: phaseOf(d.Submission),
	}
	if rc, ok := d.Submission.Value(); ok {
		out.Receipt = &rc
	}
	return out
}

func idsToStrings(ids []product.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
