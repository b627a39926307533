package taxonomy

import (
	"testing"
)

func TestDefaultLoads(t *testing.T) {
	tax := Default()
	if tax.Version != 1 {
		t.Errorf("version = %d, want 1", tax.Version)
	}
	names := tax.CategoryNames()
	if len(names) == 0 {
		t.Fatal("no categories loaded")
	}
	if names[0] != "Home Appliances" {
		t.Errorf("first category = %q, document order not preserved", names[0])
	}
	if !tax.HasCategory("Lights") {
		t.Error("Lights category missing")
	}
}

func TestSubcategoriesCascade(t *testing.T) {
	tax := Default()

	subs := tax.Subcategories("Lights")
	want := map[string]bool{
		"Functional Lighting": true, "Decorative Lighting": true,
		"Speciality Lighting": true, "Fixtures": true,
	}
	if len(subs) != len(want) {
		t.Fatalf("Subcategories(Lights) = %v", subs)
	}
	for _, s := range subs {
		if !want[s] {
			t.Errorf("unexpected subcategory %q", s)
		}
	}

	if subs := tax.Subcategories("Nope"); subs != nil {
		t.Errorf("unknown category yielded %v", subs)
	}
}

func TestNoSubcategorySentinel(t *testing.T) {
	tax := Default()
	subs := tax.Subcategories("Kitchen Tools")
	if len(subs) != 1 || subs[0] != NoSubcategory {
		t.Fatalf("Kitchen Tools subcategories = %v", subs)
	}
	items := tax.Items("Kitchen Tools", NoSubcategory)
	if len(items) == 0 {
		t.Error("sentinel subcategory has no items")
	}
}

func TestItemsWithoutSubcategorySpansCategory(t *testing.T) {
	tax := Default()
	all := tax.Items("Lights", "")
	scoped := tax.Items("Lights", "Fixtures")
	if len(scoped) == 0 || len(all) <= len(scoped) {
		t.Errorf("expected category-wide items to exceed one subcategory: %d vs %d", len(all), len(scoped))
	}
}

func TestContains(t *testing.T) {
	tax := Default()
	tests := []struct {
		category, subcategory, item string
		want                        bool
	}{
		{"Lights", "Fixtures", "Chandeliers", true},
		{"Lights", "Fixtures", "Sofa Beds", false},
		{"Lights", "", "Chandeliers", true},
		{"Lights", "", "", true},
		{"Furniture", "Bedroom Furniture", "", true},
		{"Furniture", "Fixtures", "", false},
		{"Unknown", "", "", false},
	}
	for _, tt := range tests {
		if got := tax.Contains(tt.category, tt.subcategory, tt.item); got != tt.want {
			t.Errorf("Contains(%q,%q,%q) = %v, want %v",
				tt.category, tt.subcategory, tt.item, got, tt.want)
		}
	}
}

func TestSearchPrunes(t *testing.T) {
	tax := Default()

	got := tax.Search("chandelier")
	if len(got.Categories) != 1 || got.Categories[0].Name != "Lights" {
		t.Fatalf("search result = %+v", got.Categories)
	}
	subs := got.Categories[0].Subcategories
	if len(subs) != 1 || subs[0].Name != "Fixtures" {
		t.Fatalf("pruned subcategories = %+v", subs)
	}
	if len(subs[0].Items) != 1 || subs[0].Items[0] != "Chandeliers" {
		t.Errorf("pruned items = %v", subs[0].Items)
	}

	// Matching a category keeps its whole subtree.
	whole := tax.Search("furniture")
	for _, c := range whole.Categories {
		if c.Name == "Furniture" {
			if len(c.Subcategories) != len(mustCategory(t, tax, "Furniture").Subcategories) {
				t.Error("category match should keep the whole subtree")
			}
		}
	}

	if full := tax.Search(""); len(full.Categories) != len(tax.Categories) {
		t.Error("empty term should return the full tree")
	}
}

func mustCategory(t *testing.T, tax *Taxonomy, name string) Category {
	t.Helper()
	for _, c := range tax.Categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q missing", name)
	return Category{}
}
