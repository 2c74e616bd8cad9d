package selection

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
)

func TestToggle_AddRemove(t *testing.T) {
	s := New()

	selected, err := s.Toggle("a")
	if err != nil || !selected {
		t.Fatalf("Toggle(a) = %v, %v", selected, err)
	}
	if _, err := s.Toggle("b"); err != nil {
		t.Fatal(err)
	}
	selected, err = s.Toggle("a")
	if err != nil || selected {
		t.Fatalf("second Toggle(a) = %v, %v", selected, err)
	}
	if diff := cmp.Diff([]product.ID{"b"}, s.IDs()); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestToggle_CapacityRejected(t *testing.T) {
	s := New()
	for _, id := range []product.ID{"1", "2", "3", "4"} {
		if _, err := s.Toggle(id); err != nil {
			t.Fatalf("Toggle(%s): %v", id, err)
		}
	}

	selected, err := s.Toggle("5")
	if !errors.Is(err, domain.ErrSelectionFull) {
		t.Fatalf("err = %v, want ErrSelectionFull", err)
	}
	if selected {
		t.Error("rejected id must not be selected")
	}
	if diff := cmp.Diff([]product.ID{"1", "2", "3", "4"}, s.IDs()); diff != "" {
		t.Errorf("set must be unchanged (-want +got):\n%s", diff)
	}

	// Removing a present id works at capacity.
	if selected, err := s.Toggle("2"); err != nil || selected {
		t.Fatalf("Toggle(2) at capacity = %v, %v", selected, err)
	}
	if _, err := s.Toggle("5"); err != nil {
		t.Fatalf("Toggle(5) after removal: %v", err)
	}
	if diff := cmp.Diff([]product.ID{"1", "3", "4", "5"}, s.IDs()); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestToggle_RandomSequencesStayBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := New()
	for i := 0; i < 2000; i++ {
		id := product.ID(fmt.Sprint(rng.Intn(9)))
		wasPresent := s.Contains(id)
		_, _ = s.Toggle(id)
		if s.Len() > domain.MaxSelection {
			t.Fatalf("step %d: size %d exceeds capacity", i, s.Len())
		}
		if wasPresent && s.Contains(id) {
			t.Fatalf("step %d: toggling present id %s did not remove it", i, id)
		}
	}
}

func TestCanCompare(t *testing.T) {
	s := New()
	if s.CanCompare() {
		t.Error("empty set cannot compare")
	}
	_, _ = s.Toggle("a")
	if s.CanCompare() {
		t.Error("single selection cannot compare")
	}
	_, _ = s.Toggle("b")
	if !s.CanCompare() {
		t.Error("two selections can compare")
	}
}

func TestClear(t *testing.T) {
	s := New()
	_, _ = s.Toggle("a")
	_, _ = s.Toggle("b")
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
}

func TestIDs_ReturnsCopy(t *testing.T) {
	s := New()
	_, _ = s.Toggle("a")
	ids := s.IDs()
	ids[0] = "z"
	if !s.Contains("a") {
		t.Error("IDs must return a copy")
	}
}
