package result

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
)

func mk(id, cat string) product.Product {
	return product.New(product.Fields{ID: product.ID(id), Name: id, Category: cat})
}

func TestNew_CategoriesFromProducts(t *testing.T) {
	r := New(Overall{Label: aspect.Positive}, aspect.Set{}, []product.Product{
		mk("1", "Milk"), mk("2", "Cereal"), mk("3", "Milk"), mk("4", ""),
	})

	if diff := cmp.Diff([]string{"Cereal", "Milk"}, r.Categories()); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
	if r.Len() != 4 {
		t.Errorf("Len = %d, want 4", r.Len())
	}
}

func TestResult_Lookup(t *testing.T) {
	r := New(Overall{}, aspect.Set{}, []product.Product{mk("a", "x"), mk("b", "y")})

	p, ok := r.Product("b")
	if !ok || p.Category() != "y" {
		t.Errorf("Product(b) = %v, %v", p.ID(), ok)
	}
	if r.Contains("zzz") {
		t.Error("Contains(zzz) = true")
	}
}

func TestResult_Empty(t *testing.T) {
	r := New(Overall{Label: aspect.Neutral}, aspect.Set{}, nil)
	if r.Len() != 0 || len(r.Categories()) != 0 {
		t.Errorf("expected empty result, got %d products %v", r.Len(), r.Categories())
	}
}

func TestResult_ProductsIsCopy(t *testing.T) {
	r := New(Overall{}, aspect.Set{}, []product.Product{mk("a", "x")})
	ps := r.Products()
	ps[0] = mk("b", "y")
	if r.Products()[0].ID() != "a" {
		t.Error("Products must return a copy")
	}
}
