package catalog

import (
	"sort"
	"strings"
)

// CategoryOption is a derived filter-control entry.
type CategoryOption struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Categories derives the distinct category names present in the collection,
// sorted lexicographically. An empty collection yields an empty slice,
// never an error.
func Categories(entries []Entry) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		cat := e.Product.Category
		if cat == "" {
			continue
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Subcategories derives the distinct subcategories of products in the
// selected category, sorted. No category selected means no subcategory
// control.
func Subcategories(entries []Entry, category string) []string {
	if category == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		p := e.Product
		if p.Category != category || p.Subcategory == "" {
			continue
		}
		if _, ok := seen[p.Subcategory]; ok {
			continue
		}
		seen[p.Subcategory] = struct{}{}
		out = append(out, p.Subcategory)
	}
	sort.Strings(out)
	return out
}

// CategoryOptions pairs each derived category with its stable slug.
func CategoryOptions(entries []Entry) []CategoryOption {
	cats := Categories(entries)
	out := make([]CategoryOption, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryOption{Slug: Slug(c), Name: c})
	}
	return out
}

// Slug lowercases and hyphenates a category name into a stable identifier.
func Slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(name)), "-"))
}
