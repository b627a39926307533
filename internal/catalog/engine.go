// Package catalog holds the pure filtering, sorting and aggregation logic
// shared by the storefront listing and the admin panel, plus the live view
// that feeds them from the record store.
package catalog

import (
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/prayani09/ShriyashWork/internal/domain"
	"github.com/prayani09/ShriyashWork/internal/store"
)

// Sort keys accepted by the listing.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortName      = "name"
)

// Entry pairs a record id with its decoded product, preserving the store's
// stable ordering through filter and sort passes.
type Entry struct {
	ID      string         `json:"id"`
	Product domain.Product `json:"product"`
}

// FilterSpec is the set of user-selected listing criteria. Numeric bounds
// stay strings: unparseable input fails open and excludes nothing.
type FilterSpec struct {
	Search      string `json:"search" query:"search"`
	Category    string `json:"category" query:"category"`
	Subcategory string `json:"subcategory" query:"subcategory"`
	Item        string `json:"item" query:"item"`
	MinPrice    string `json:"minPrice" query:"minPrice"`
	MaxPrice    string `json:"maxPrice" query:"maxPrice"`
	MinRating   string `json:"minRating" query:"minRating"`
	SortBy      string `json:"sort" query:"sort"`
}

// SpecFromValues seeds a filter spec from listing query parameters; the
// `search` and `category` parameters double as the page's URL interface.
func SpecFromValues(v url.Values) FilterSpec {
	return FilterSpec{
		Search:      v.Get("search"),
		Category:    v.Get("category"),
		Subcategory: v.Get("subcategory"),
		Item:        v.Get("item"),
		MinPrice:    v.Get("minPrice"),
		MaxPrice:    v.Get("maxPrice"),
		MinRating:   v.Get("minRating"),
		SortBy:      v.Get("sort"),
	}
}

// EntriesFromSnapshot decodes a store snapshot into entries ordered by
// ascending id. Record ids are time-ordered, so this reproduces insertion
// order and gives equal sort keys a stable base order. Records that fail to
// decode are skipped rather than failing the whole snapshot.
func EntriesFromSnapshot(snap store.Snapshot) []Entry {
	entries := make([]Entry, 0, len(snap))
	for id, rec := range snap {
		p, err := domain.ProductFromRecord(id, rec)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{ID: id, Product: p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Apply filters then sorts entries per the spec. Predicates are conjunctive
// and each one is a no-op when its field is empty. The transform is pure:
// the input slice is never mutated and re-running on identical inputs
// yields identical output.
func Apply(entries []Entry, spec FilterSpec) []Entry {
	out := make([]Entry, 0, len(entries))

	term := strings.ToLower(strings.TrimSpace(spec.Search))
	minPrice, hasMinPrice := parseBound(spec.MinPrice)
	maxPrice, hasMaxPrice := parseBound(spec.MaxPrice)
	minRating, hasMinRating := parseBound(spec.MinRating)

	for _, e := range entries {
		p := e.Product
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if spec.Category != "" && p.Category != spec.Category {
			continue
		}
		if spec.Subcategory != "" && p.Subcategory != spec.Subcategory {
			continue
		}
		if spec.Item != "" && p.Item != spec.Item {
			continue
		}
		if hasMinPrice && p.Price < minPrice {
			continue
		}
		if hasMaxPrice && p.Price > maxPrice {
			continue
		}
		if hasMinRating && p.Rating < minRating {
			continue
		}
		out = append(out, e)
	}

	sortEntries(out, spec.SortBy)
	return out
}

// parseBound parses a numeric filter input. Malformed values fail open:
// the bound is ignored rather than raised.
func parseBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// matchesTerm reports a case-insensitive substring hit on any searchable
// field.
func matchesTerm(p domain.Product, term string) bool {
	for _, field := range []string{p.Name, p.Details, p.Category, p.Subcategory, p.Item} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// sortEntries orders in place. Sorting is stable so ties keep the
// underlying collection order.
func sortEntries(entries []Entry, sortBy string) {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Product.Price < entries[j].Product.Price
		})
	case SortPriceHigh:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Product.Price > entries[j].Product.Price
		})
	case SortRating:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Product.Rating > entries[j].Product.Rating
		})
	case SortName:
		coll := collate.New(language.English)
		sort.SliceStable(entries, func(i, j int) bool {
			return coll.CompareString(entries[i].Product.Name, entries[j].Product.Name) < 0
		})
	case SortNewest:
		fallthrough
	default:
		// Missing createdAt decodes to the zero time and sorts last.
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Product.CreatedAt.After(entries[j].Product.CreatedAt)
		})
	}
}

// ApplyAdmin is the admin panel's simplified pass: search over
// name/category/details, then category, subcategory and item narrowing. No
// sort beyond the underlying order.
func ApplyAdmin(entries []Entry, search, category, subcategory, item string) []Entry {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		p := e.Product
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) &&
			!strings.Contains(strings.ToLower(p.Details), term) {
			continue
		}
		if category != "" {
			if p.Category != category {
				continue
			}
			if subcategory != "" && p.Subcategory != subcategory {
				continue
			}
			if item != "" && p.Item != item {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
