package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	"github.com/kailas-cloud/aspectmind/internal/domain/search/query"
)

func f64(v float64) *float64 { return &v }

func TestController_Defaults(t *testing.T) {
	c := New()
	if diff := cmp.Diff(query.DefaultFilters(), c.Snapshot()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SetAndClear(t *testing.T) {
	c := New()
	c.SetCategory("Dairy")
	if err := c.SetMinSentiment(f64(0.4)); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSort(query.ByName); err != nil {
		t.Fatal(err)
	}

	want := query.Filters{Category: "Dairy", MinSentiment: f64(0.4), Sort: query.ByName}
	if diff := cmp.Diff(want, c.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	c.Clear()
	once := c.Snapshot()
	c.Clear()
	twice := c.Snapshot()
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Clear is not idempotent (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(query.DefaultFilters(), twice); diff != "" {
		t.Errorf("Clear mismatch (-want +got):\n%s", diff)
	}
}

func TestController_ToggleCategory(t *testing.T) {
	c := New()
	c.ToggleCategory("Milk")
	if c.Snapshot().Category != "Milk" {
		t.Fatal("expected Milk selected")
	}
	c.ToggleCategory("Cereal")
	if c.Snapshot().Category != "Cereal" {
		t.Fatal("expected Cereal selected")
	}
	c.ToggleCategory("Cereal")
	if c.Snapshot().Category != "" {
		t.Fatal("expected category deselected")
	}
}

func TestController_Validation(t *testing.T) {
	c := New()
	if err := c.SetMinSentiment(f64(-1.1)); !errors.Is(err, domain.ErrInvalidSentiment) {
		t.Errorf("SetMinSentiment(-1.1) err = %v", err)
	}
	if err := c.SetMinSentiment(f64(math.NaN())); !errors.Is(err, domain.ErrInvalidSentiment) {
		t.Errorf("SetMinSentiment(NaN) err = %v", err)
	}
	if err := c.SetSort("price"); !errors.Is(err, domain.ErrInvalidSortMode) {
		t.Errorf("SetSort(price) err = %v", err)
	}
	if diff := cmp.Diff(query.DefaultFilters(), c.Snapshot()); diff != "" {
		t.Errorf("rejected updates must not change state (-want +got):\n%s", diff)
	}
}

func TestController_SnapshotIsolation(t *testing.T) {
	c := New()
	v := f64(0.2)
	_ = c.SetMinSentiment(v)
	*v = 0.9
	snap := c.Snapshot()
	if *snap.MinSentiment != 0.2 {
		t.Errorf("controller aliased caller pointer: %v", *snap.MinSentiment)
	}
	*snap.MinSentiment = 0.7
	if *c.Snapshot().MinSentiment != 0.2 {
		t.Error("snapshot aliased controller state")
	}
}

func TestController_RemoveThreshold(t *testing.T) {
	c := New()
	_ = c.SetMinSentiment(f64(0.5))
	_ = c.SetMinSentiment(nil)
	if c.Snapshot().MinSentiment != nil {
		t.Error("expected threshold removed")
	}
}
