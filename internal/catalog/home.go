package catalog

import "sort"

// DefaultSectionSize is how many products each home-page category rail
// shows.
const DefaultSectionSize = 5

// HomeSection is one category rail on the home page.
type HomeSection struct {
	Category string  `json:"category"`
	Slug     string  `json:"slug"`
	Products []Entry `json:"products"`
}

// HomeSections groups the collection by category and keeps the newest n per
// category. Products with no category land in an "Uncategorized" section.
// Sections come out in lexicographic category order.
func HomeSections(entries []Entry, n int) []HomeSection {
	if n <= 0 {
		n = DefaultSectionSize
	}
	byCategory := make(map[string][]Entry)
	for _, e := range entries {
		cat := e.Product.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		byCategory[cat] = append(byCategory[cat], e)
	}

	cats := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	sections := make([]HomeSection, 0, len(cats))
	for _, cat := range cats {
		group := byCategory[cat]
		sortEntries(group, SortNewest)
		if len(group) > n {
			group = group[:n]
		}
		sections = append(sections, HomeSection{Category: cat, Slug: Slug(cat), Products: group})
	}
	return sections
}

// Favorites extracts the best-seller rail.
func Favorites(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Product.Favorite {
			out = append(out, e)
		}
	}
	return out
}

// Related picks up to n products sharing a category with the given product,
// excluding the product itself, newest first.
func Related(entries []Entry, productID, category string, n int) []Entry {
	if n <= 0 {
		n = 4
	}
	var out []Entry
	for _, e := range entries {
		if e.ID == productID || e.Product.Category != category {
			continue
		}
		out = append(out, e)
	}
	sortEntries(out, SortNewest)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
