package catalogapi

import (
	"github.com/labstack/echo/v4"

	"github.com/prayani09/ShriyashWork/internal/catalog"
	"github.com/prayani09/ShriyashWork/internal/webserver"
)

func registerCategoryRoutes() {
	webserver.ApiGET("/api/catalog/categories", listCategories)
}

// listCategories derives the filter-control data from the live collection.
// With a `category` parameter it also scopes the subcategory options to that
// category. An empty catalog yields empty sets, never an error.
func listCategories(c echo.Context) error {
	entries := webserver.GetView(c).Entries()
	resp := map[string]interface{}{
		"categories": catalog.CategoryOptions(entries),
	}
	if category := c.QueryParam("category"); category != "" {
		resp["subcategories"] = catalog.Subcategories(entries, category)
	}
	return ok(c, resp)
}
