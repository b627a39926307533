package catalogapi

import (
	"testing"
	"time"

	"github.com/prayani09/ShriyashWork/internal/domain"
)

func TestListCategoriesDerivesOptions(t *testing.T) {
	st := newTestStore(t)
	now := time.Now()
	seedProduct(t, st, domain.ProductDraft{Name: "Desk Lamp", Category: "Lights", Subcategory: "Fixtures", Rating: 4.2}, now)
	seedProduct(t, st, domain.ProductDraft{Name: "Floor Lamp", Category: "Lights", Subcategory: "Functional Lighting", Rating: 4.6}, now)
	seedProduct(t, st, domain.ProductDraft{Name: "Sofa", Category: "Furniture", Rating: 4.8}, now)
	view := newLiveView(t, st)

	c, rec := newTestContext(t, "/api/catalog/categories", st, view)
	if err := listCategories(c); err != nil {
		t.Fatalf("listCategories: %v", err)
	}
	data := dataOf(t, rec)
	categories := data["categories"].([]interface{})
	if len(categories) != 2 {
		t.Fatalf("categories = %d, want 2 distinct", len(categories))
	}
	first := categories[0].(map[string]interface{})
	if first["name"] != "Furniture" || first["slug"] != "furniture" {
		t.Errorf("first option = %v", first)
	}
	if _, present := data["subcategories"]; present {
		t.Error("subcategories returned without a category parameter")
	}
}

func TestListCategoriesScopesSubcategories(t *testing.T) {
	st := newTestStore(t)
	now := time.Now()
	seedProduct(t, st, domain.ProductDraft{Name: "Desk Lamp", Category: "Lights", Subcategory: "Fixtures", Rating: 4.2}, now)
	seedProduct(t, st, domain.ProductDraft{Name: "Sofa", Category: "Furniture", Subcategory: "Living Room Furniture", Rating: 4.8}, now)
	view := newLiveView(t, st)

	c, rec := newTestContext(t, "/api/catalog/categories?category=Lights", st, view)
	if err := listCategories(c); err != nil {
		t.Fatalf("listCategories: %v", err)
	}
	data := dataOf(t, rec)
	subs := data["subcategories"].([]interface{})
	if len(subs) != 1 || subs[0] != "Fixtures" {
		t.Errorf("subcategories = %v, want [Fixtures]", subs)
	}
}

func TestListCategoriesEmptyCatalog(t *testing.T) {
	st := newTestStore(t)
	view := newLiveView(t, st)

	c, rec := newTestContext(t, "/api/catalog/categories", st, view)
	if err := listCategories(c); err != nil {
		t.Fatalf("listCategories: %v", err)
	}
	data := dataOf(t, rec)
	if categories := data["categories"].([]interface{}); len(categories) != 0 {
		t.Errorf("categories = %v, want empty", categories)
	}
}
