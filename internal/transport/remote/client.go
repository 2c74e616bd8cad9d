// Package remote is the HTTP client for the aspect analysis service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	domanalytics "github.com/kailas-cloud/aspectmind/internal/domain/analytics"
	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	domcmp "github.com/kailas-cloud/aspectmind/internal/domain/comparison"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	domquery "github.com/kailas-cloud/aspectmind/internal/domain/search/query"
	"github.com/kailas-cloud/aspectmind/internal/domain/search/result"
	"github.com/kailas-cloud/aspectmind/internal/usecase/feedback"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4 << 10
)

// Config holds the analysis service client settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the analysis service. Every failure, whether a transport
// error, a timeout, a non-2xx status or an error payload, is a *domain.RequestError.
type Client struct {
	base *url.URL
	http *http.Client
	obs  *observer
}

// New creates a client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("remote: base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("remote: unsupported scheme %q", base.Scheme)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{base: base, http: hc, obs: &observer{logger: logger}}, nil
}

// Search runs a recommendation query.
func (c *Client) Search(ctx context.Context, q domquery.Query) (res result.Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	params, err := searchParams(q)
	if err != nil {
		return result.Result{}, domain.NewRequestError("search", 0, err)
	}

	var resp searchResponse
	if err = c.do(ctx, "search", http.MethodGet, "/search", params, nil, &resp); err != nil {
		return result.Result{}, err
	}
	return resp.toResult(), nil
}

// Compare fetches raw per-product aspect data for ids.
func (c *Client) Compare(ctx context.Context, ids []product.ID) (out []domcmp.ComparedProduct, err error) {
	start := time.Now()
	defer func() { c.obs.observe("compare", start, err) }()

	req := compareRequest{ProductIDs: make([]string, len(ids))}
	for i, id := range ids {
		req.ProductIDs[i] = string(id)
	}

	var resp compareResponse
	if err = c.do(ctx, "compare", http.MethodPost, "/compare", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		err = domain.NewRequestError("compare", http.StatusOK, errors.New(resp.Error))
		return nil, err
	}
	return resp.toCompared(), nil
}

// Analytics fetches the dataset summary.
func (c *Client) Analytics(ctx context.Context) (snap domanalytics.Snapshot, err error) {
	start := time.Now()
	defer func() { c.obs.observe("analytics", start, err) }()

	var resp analyticsResponse
	if err = c.do(ctx, "analytics", http.MethodGet, "/analytics", nil, nil, &resp); err != nil {
		return domanalytics.Snapshot{}, err
	}
	return resp.toSnapshot(), nil
}

// AnalyzeText runs aspect-sentiment analysis on free text without storing it.
func (c *Client) AnalyzeText(ctx context.Context, text string) (set aspect.Set, err error) {
	start := time.Now()
	defer func() { c.obs.observe("analyze", start, err) }()

	if err = c.do(ctx, "analyze", http.MethodPost, "/analyze", nil, analyzeRequest{Text: text}, &set); err != nil {
		return aspect.Set{}, err
	}
	return set, nil
}

// SubmitFeedback stores feedback text for a product.
func (c *Client) SubmitFeedback(ctx context.Context, id product.ID, text string) (rc feedback.Receipt, err error) {
	start := time.Now()
	defer func() { c.obs.observe("feedback", start, err) }()

	var resp feedbackResponse
	req := feedbackRequest{ProductID: string(id), Feedback: text}
	if err = c.do(ctx, "feedback", http.MethodPost, "/feedback", nil, req, &resp); err != nil {
		return feedback.Receipt{}, err
	}
	if resp.Status == "error" {
		err = domain.NewRequestError("feedback", http.StatusOK, errors.New(resp.Message))
		return feedback.Receipt{}, err
	}
	return feedback.Receipt{Message: resp.Message, Analysis: resp.FeedbackAnalysis}, nil
}

// Health checks the service root.
func (c *Client) Health(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	var resp rootResponse
	if err = c.do(ctx, "health", http.MethodGet, "/", nil, nil, &resp); err != nil {
		return err
	}
	if resp.Status == "error" {
		err = domain.NewRequestError("health", http.StatusOK, errors.New(resp.Message))
		return err
	}
	return nil
}

// searchParams encodes the query snapshot as form-style query parameters.
// Unset filters are omitted so the service applies its own defaults.
func searchParams(q domquery.Query) (url.Values, error) {
	values := url.Values{}
	add := func(name string, v any) error {
		frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		parsed, err := url.ParseQuery(frag)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		for k, vs := range parsed {
			for _, v := range vs {
				values.Add(k, v)
			}
		}
		return nil
	}

	if err := add("q", q.Text()); err != nil {
		return nil, err
	}
	if cat := q.Category(); cat != "" {
		if err := add("category", cat); err != nil {
			return nil, err
		}
	}
	if v, ok := q.MinSentiment(); ok {
		if err := add("min_sentiment", v); err != nil {
			return nil, err
		}
	}
	if err := add("sort_by", string(q.Sort())); err != nil {
		return nil, err
	}
	return values, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return domain.NewRequestError(op, 0, fmt.Errorf("encode body: %w", err))
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return domain.NewRequestError(op, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewRequestError(op, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.NewRequestError(op, resp.StatusCode, errors.New(errorDetail(resp.Body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewRequestError(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// errorDetail extracts the "detail" field of an error body, falling back to the raw text.
func errorDetail(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(b, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	if s := strings.TrimSpace(string(b)); s != "" {
		return s
	}
	return "empty response body"
}
