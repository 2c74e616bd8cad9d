package comparison

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	domcmp "github.com/kailas-cloud/aspectmind/internal/domain/comparison"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	"github.com/kailas-cloud/aspectmind/internal/domain/state"
	"github.com/kailas-cloud/aspectmind/internal/metrics"
)

// --- Mocks ---

type mockComparer struct {
	calls     int32
	compareFn func(ctx context.Context, ids []product.ID) ([]domcmp.ComparedProduct, error)
}

func (m *mockComparer) Compare(ctx context.Context, ids []product.ID) ([]domcmp.ComparedProduct, error) {
	atomic.AddInt32(&m.calls, 1)
	return m.compareFn(ctx, ids)
}

func compared(id string, sigs ...aspect.Signal) domcmp.ComparedProduct {
	set := aspect.NewSet(sigs...)
	return domcmp.ComparedProduct{
		ID:            product.ID(id),
		Name:          id,
		Aspects:       set,
		PositiveCount: set.Count(aspect.Positive),
		NegativeCount: set.Count(aspect.Negative),
		TotalAspects:  set.Len(),
	}
}

// --- Tests ---

func TestRequest_SizeBoundsNoNetwork(t *testing.T) {
	api := &mockComparer{compareFn: func(context.Context, []product.ID) ([]domcmp.ComparedProduct, error) {
		t.Fatal("compare must not be called")
		return nil, nil
	}}
	svc := New(api, nil)

	for _, ids := range [][]product.ID{nil, {"a"}, {"a", "b", "c", "d", "e"}} {
		_, err := svc.Request(context.Background(), ids)
		if !errors.Is(err, domain.ErrSelectionSize) {
			t.Errorf("Request(%v) err = %v, want ErrSelectionSize", ids, err)
		}
	}
	if atomic.LoadInt32(&api.calls) != 0 {
		t.Errorf("expected no network calls, got %d", api.calls)
	}
	if svc.State().Phase() != state.Idle {
		t.Errorf("phase = %q, want idle", svc.State().Phase())
	}
}

func TestRequest_BuildsReport(t *testing.T) {
	api := &mockComparer{compareFn: func(_ context.Context, ids []product.ID) ([]domcmp.ComparedProduct, error) {
		if len(ids) != 2 {
			t.Errorf("ids = %v", ids)
		}
		return []domcmp.ComparedProduct{
			compared("p2",
				aspect.NewSignal("taste", aspect.Positive, 0.8, ""),
				aspect.NewSignal("design", aspect.Positive, 0.7, "")),
			compared("p1",
				aspect.NewSignal("taste", aspect.Positive, 0.9, ""),
				aspect.NewSignal("price", aspect.Negative, 0.6, "")),
		}, nil
	}}
	svc := New(api, nil)

	report, err := svc.Request(context.Background(), []product.ID{"p1", "p2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := report.Matrix()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Aspect != "taste" || rows[1].Aspect != "price" || rows[2].Aspect != "design" {
		t.Errorf("unexpected row order: %q %q %q", rows[0].Aspect, rows[1].Aspect, rows[2].Aspect)
	}
	if rows[1].Cell(1).Available() || rows[2].Cell(0).Available() {
		t.Error("expected N/A cells for missing aspects")
	}
	// p1 net 0, p2 net 2
	if w := report.Winners(); len(w) != 1 || w[0] != 1 {
		t.Errorf("Winners = %v, want [1]", w)
	}
	if v, ok := svc.State().Value(); !ok || v.Len() != 2 {
		t.Errorf("state not committed: %q", svc.State().Phase())
	}
}

func TestRequest_Failure(t *testing.T) {
	api := &mockComparer{compareFn: func(context.Context, []product.ID) ([]domcmp.ComparedProduct, error) {
		return nil, domain.NewRequestError("compare", 500, errors.New("boom"))
	}}
	svc := New(api, nil)

	_, err := svc.Request(context.Background(), []product.ID{"a", "b"})
	if !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("err = %v, want ErrRequestFailed", err)
	}
	st := svc.State()
	if st.Phase() != state.Failure {
		t.Fatalf("phase = %q, want failure", st.Phase())
	}
	if domain.UserMessage(st.Err()) != "Failed to load comparison data." {
		t.Errorf("message = %q", domain.UserMessage(st.Err()))
	}
}

func TestRequest_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	api := &mockComparer{compareFn: func(_ context.Context, ids []product.ID) ([]domcmp.ComparedProduct, error) {
		if ids[0] == "old" {
			close(entered)
			<-release
		}
		return []domcmp.ComparedProduct{compared(string(ids[0])), compared(string(ids[1]))}, nil
	}}
	svc := New(api, nil)
	before := testutil.ToFloat64(metrics.StaleResponsesTotal.WithLabelValues("comparison"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Request(context.Background(), []product.ID{"old", "x"})
	}()
	<-entered

	if _, err := svc.Request(context.Background(), []product.ID{"new", "y"}); err != nil {
		t.Fatal(err)
	}
	close(release)
	<-done

	report, ok := svc.State().Value()
	if !ok {
		t.Fatalf("phase = %q, want success", svc.State().Phase())
	}
	if report.Products()[0].ID != "new" {
		t.Errorf("stale response overwrote the newer report: %v", report.Products()[0].ID)
	}
	after := testutil.ToFloat64(metrics.StaleResponsesTotal.WithLabelValues("comparison"))
	if after-before != 1 {
		t.Errorf("stale counter delta = %v, want 1", after-before)
	}
}

func TestReset(t *testing.T) {
	api := &mockComparer{compareFn: func(_ context.Context, ids []product.ID) ([]domcmp.ComparedProduct, error) {
		return []domcmp.ComparedProduct{compared(string(ids[0])), compared(string(ids[1]))}, nil
	}}
	svc := New(api, nil)
	if _, err := svc.Request(context.Background(), []product.ID{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	svc.Reset()
	if svc.State().Phase() != state.Idle {
		t.Errorf("phase = %q, want idle", svc.State().Phase())
	}
}
