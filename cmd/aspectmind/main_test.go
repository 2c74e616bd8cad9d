package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const searchBody = `{
  "query_analysis": {"taste": {"sentiment": "Positive", "polarity": "positive", "confidence": 0.9}},
  "overall_sentiment": {"label": "Positive", "confidence": 0.8},
  "results": [
    {"product": "Oat Milk", "top_pos_aspects": [{"name": "taste", "score": 0.9}], "top_neg_aspects": [],
     "all_aspects": {"taste": {"sentiment": "Positive", "confidence": 0.9}}},
    {"product": "Corn Flakes", "top_pos_aspects": [], "top_neg_aspects": [{"name": "price", "score": 0.6}],
     "all_aspects": {"price": {"sentiment": "Negative", "confidence": 0.6}}}
  ],
  "raw_recs": [
    {"id": "m1", "name": "Oat Milk", "category": "Milk", "score": 0.9, "aspects": {}},
    {"id": "c1", "name": "Corn Flakes", "category": "Cereal", "score": 0.7, "aspects": {}}
  ]
}`

const compareBody = `{"products": [
  {"id": "m1", "name": "Oat Milk", "category": "Milk",
   "all_aspects": {"taste": {"sentiment": "Positive", "confidence": 0.9}},
   "positive_aspects": [{"name": "taste", "score": 0.9}], "negative_aspects": [],
   "positive_count": 1, "negative_count": 0, "total_aspects": 1},
  {"id": "c1", "name": "Corn Flakes", "category": "Cereal",
   "all_aspects": {"price": {"sentiment": "Negative", "confidence": 0.6}},
   "positive_aspects": [], "negative_aspects": [{"name": "price", "score": 0.6}],
   "positive_count": 0, "negative_count": 1, "total_aspects": 1}
]}`

// --- Mocks ---

func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(searchBody))
	})
	mux.HandleFunc("/compare", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductIDs []string `json:"product_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.ProductIDs) != 2 {
			t.Errorf("unexpected compare body: %v %v", req, err)
		}
		_, _ = w.Write([]byte(compareBody))
	})
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"taste": {"sentiment": "Positive", "confidence": 0.9}}`))
	})
	mux.HandleFunc("/feedback", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "message": "db down"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// --- Tests ---

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "aspectmind dev") {
		t.Errorf("output = %q", out)
	}
}

func TestSearch_CompareTop(t *testing.T) {
	srv := fakeService(t)

	out, err := run(t, "--remote", srv.URL, "search", "--compare", "2", "tasty", "milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Oat Milk", "Corn Flakes", "Cereal, Milk", "* Oat Milk", "Best overall:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearch_InvalidSort(t *testing.T) {
	srv := fakeService(t)

	if _, err := run(t, "--remote", srv.URL, "search", "--sort", "price", "milk"); err == nil {
		t.Fatal("expected error for unknown sort mode")
	}
}

func TestCompare_ArgBounds(t *testing.T) {
	if _, err := run(t, "compare", "only-one"); err == nil {
		t.Fatal("expected error for a single product")
	}
}

func TestAnalyze(t *testing.T) {
	srv := fakeService(t)

	out, err := run(t, "--remote", srv.URL, "analyze", "great", "taste")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "taste Positive 90%") {
		t.Errorf("output = %q", out)
	}
}

func TestFeedback_ErrorStatus(t *testing.T) {
	srv := fakeService(t)

	_, err := run(t, "--remote", srv.URL, "feedback", "m1", "love", "it")
	if err == nil {
		t.Fatal("expected error for status=error")
	}
	if !strings.Contains(err.Error(), "Failed to submit feedback.") {
		t.Errorf("err = %v", err)
	}
}
