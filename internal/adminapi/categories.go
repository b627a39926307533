package adminapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prayani09/ShriyashWork/internal/domain"
	"github.com/prayani09/ShriyashWork/internal/store"
	"github.com/prayani09/ShriyashWork/internal/webserver"
)

// registerCategoryRoutes registers the stored category list endpoint
func registerCategoryRoutes() {
	webserver.ApiGET("/admin/api/categories", listCategories)
}

// listCategories returns the stored category records, sorted by name, for
// the admin form's autocomplete.
func listCategories(c echo.Context) error {
	snap, err := webserver.GetStore(c).SnapshotAt(store.CategoriesPath)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read categories", err.Error())
	}
	categories := make([]domain.Category, 0, len(snap))
	for id, rec := range snap {
		categories = append(categories, domain.CategoryFromRecord(id, rec))
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return ok(c, categories)
}

// ensureCategory appends a category record when the name is not yet stored.
// Categories are advisory autocomplete data: a failure here is logged and
// never blocks the product save that triggered it.
func ensureCategory(st *store.Store, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	snap, err := st.SnapshotAt(store.CategoriesPath)
	if err != nil {
		zap.S().Warnf("category lookup failed: %v", err)
		return
	}
	for _, rec := range snap {
		if existing, _ := rec["name"].(string); existing == name {
			return
		}
	}
	if _, err := st.Append(store.CategoriesPath, domain.Category{Name: name}.Record()); err != nil {
		zap.S().Warnf("category append failed for %q: %v", name, err)
	}
}
