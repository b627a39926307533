// Package taxonomy holds the fixed three-level category tree that drives the
// admin form's cascading selects. The tree is an immutable, versioned
// configuration document loaded once at startup, independent of what
// products currently exist.
package taxonomy

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// NoSubcategory is the sentinel subcategory name for categories without a
// second level. It is displayed as a generic label and stored as an empty
// string on products.
const NoSubcategory = "_uncategorized"

// NoSubcategoryLabel is what the UI shows for NoSubcategory.
const NoSubcategoryLabel = "General"

type Subcategory struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

type Category struct {
	Name          string        `yaml:"name"`
	Subcategories []Subcategory `yaml:"subcategories"`
}

type Taxonomy struct {
	Version    int        `yaml:"version"`
	Categories []Category `yaml:"categories"`
}

var defaultTaxonomy *Taxonomy

func init() {
	t, err := Parse(taxonomyYAML)
	if err != nil {
		panic(err)
	}
	defaultTaxonomy = t
}

// Default returns the embedded taxonomy.
func Default() *Taxonomy {
	return defaultTaxonomy
}

func Parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(err, "parse taxonomy")
	}
	return &t, nil
}

// CategoryNames returns category names in document order.
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		names = append(names, c.Name)
	}
	return names
}

func (t *Taxonomy) category(name string) (Category, bool) {
	for _, c := range t.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Subcategories returns the second level for a category. The sentinel
// NoSubcategory key is included as-is; display mapping is the caller's
// concern.
func (t *Taxonomy) Subcategories(category string) []string {
	c, ok := t.category(category)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(c.Subcategories))
	for _, sc := range c.Subcategories {
		names = append(names, sc.Name)
	}
	return names
}

// Items returns the leaf items for a category+subcategory pair. An empty
// subcategory returns every item under the category, mirroring the admin
// form's behavior before a subcategory is chosen.
func (t *Taxonomy) Items(category, subcategory string) []string {
	c, ok := t.category(category)
	if !ok {
		return nil
	}
	var out []string
	for _, sc := range c.Subcategories {
		if subcategory != "" && sc.Name != subcategory {
			continue
		}
		out = append(out, sc.Items...)
	}
	return out
}

// Contains reports whether the triple is a valid path in the tree. Empty
// subcategory and item are valid at any depth; a product stored with
// subcategory "" matches the NoSubcategory branch.
func (t *Taxonomy) Contains(category, subcategory, item string) bool {
	c, ok := t.category(category)
	if !ok {
		return false
	}
	if subcategory == "" && item == "" {
		return true
	}
	for _, sc := range c.Subcategories {
		if subcategory != "" && sc.Name != subcategory && !(subcategory == NoSubcategoryLabel && sc.Name == NoSubcategory) {
			continue
		}
		if item == "" {
			if subcategory == "" {
				continue
			}
			return true
		}
		for _, it := range sc.Items {
			if it == item {
				return true
			}
		}
	}
	return false
}

// HasCategory reports whether the category exists in the tree.
func (t *Taxonomy) HasCategory(category string) bool {
	_, ok := t.category(category)
	return ok
}

// Search prunes the tree to branches matching term: a matching category
// keeps its whole subtree, a matching subcategory keeps its items, and
// otherwise only matching items survive. Empty term returns the full tree.
func (t *Taxonomy) Search(term string) *Taxonomy {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return t
	}
	out := &Taxonomy{Version: t.Version}
	for _, c := range t.Categories {
		if strings.Contains(strings.ToLower(c.Name), term) {
			out.Categories = append(out.Categories, c)
			continue
		}
		var subs []Subcategory
		for _, sc := range c.Subcategories {
			if strings.Contains(strings.ToLower(sc.Name), term) {
				subs = append(subs, sc)
				continue
			}
			var items []string
			for _, it := range sc.Items {
				if strings.Contains(strings.ToLower(it), term) {
					items = append(items, it)
				}
			}
			if len(items) > 0 {
				subs = append(subs, Subcategory{Name: sc.Name, Items: items})
			}
		}
		if len(subs) > 0 {
			out.Categories = append(out.Categories, Category{Name: c.Name, Subcategories: subs})
		}
	}
	return out
}
