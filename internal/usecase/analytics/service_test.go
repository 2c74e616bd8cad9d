package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	domanalytics "github.com/kailas-cloud/aspectmind/internal/domain/analytics"
	"github.com/kailas-cloud/aspectmind/internal/domain/state"
)

// --- Mocks ---

type mockFetcher struct {
	calls       int
	analyticsFn func(ctx context.Context) (domanalytics.Snapshot, error)
}

func (m *mockFetcher) Analytics(ctx context.Context) (domanalytics.Snapshot, error) {
	m.calls++
	return m.analyticsFn(ctx)
}

func sampleSnapshot(products int) domanalytics.Snapshot {
	return domanalytics.Snapshot{
		TotalProducts: products,
		TotalAspects:  12,
		TotalReviews:  340,
		Distribution:  domanalytics.SentimentDistribution{Positive: 20, Negative: 5, Neutral: 3},
		TopAspects:    []domanalytics.AspectStats{{Name: "taste", Positive: 10, Negative: 2, Total: 12}},
		TopCategories: []domanalytics.CategoryStats{{Name: "Milk", Count: 4}},
	}
}

// --- Tests ---

func TestLoad_Success(t *testing.T) {
	api := &mockFetcher{analyticsFn: func(context.Context) (domanalytics.Snapshot, error) {
		return sampleSnapshot(7), nil
	}}
	svc := New(api, nil)

	if svc.State().Phase() != state.Idle {
		t.Fatalf("initial phase = %q", svc.State().Phase())
	}
	got, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(sampleSnapshot(7), got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	v, ok := svc.State().Value()
	if !ok || v.TotalProducts != 7 {
		t.Errorf("state = %q, want success with 7 products", svc.State().Phase())
	}
}

func TestLoad_FreshEveryTime(t *testing.T) {
	n := 0
	api := &mockFetcher{analyticsFn: func(context.Context) (domanalytics.Snapshot, error) {
		n++
		return sampleSnapshot(n), nil
	}}
	svc := New(api, nil)
	for range 3 {
		if _, err := svc.Load(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if api.calls != 3 {
		t.Errorf("calls = %d, want 3", api.calls)
	}
	if v, _ := svc.State().Value(); v.TotalProducts != 3 {
		t.Errorf("total products = %d, want 3", v.TotalProducts)
	}
}

func TestLoad_FailureIsRetryable(t *testing.T) {
	fail := true
	api := &mockFetcher{analyticsFn: func(context.Context) (domanalytics.Snapshot, error) {
		if fail {
			return domanalytics.Snapshot{}, domain.NewRequestError("analytics", 0, errors.New("connection refused"))
		}
		return sampleSnapshot(1), nil
	}}
	svc := New(api, nil)

	if _, err := svc.Load(context.Background()); !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("err = %v, want ErrRequestFailed", err)
	}
	if svc.State().Phase() != state.Failure {
		t.Fatalf("phase = %q, want failure", svc.State().Phase())
	}

	fail = false
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if svc.State().Phase() != state.Success {
		t.Errorf("phase = %q, want success", svc.State().Phase())
	}
}

func TestState_ReturnsCopy(t *testing.T) {
	api := &mockFetcher{analyticsFn: func(context.Context) (domanalytics.Snapshot, error) {
		return sampleSnapshot(2), nil
	}}
	svc := New(api, nil)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	v, _ := svc.State().Value()
	v.TopAspects[0].Name = "mutated"

	again, _ := svc.State().Value()
	if again.TopAspects[0].Name != "taste" {
		t.Errorf("state was mutated through a returned snapshot")
	}
}
