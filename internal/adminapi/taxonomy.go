package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/prayani09/ShriyashWork/internal/taxonomy"
	"github.com/prayani09/ShriyashWork/internal/webserver"
)

// registerTaxonomyRoutes registers the fixed category tree feed
func registerTaxonomyRoutes() {
	webserver.ApiGET("/admin/api/taxonomy", getTaxonomy)
}

// getTaxonomy serves the fixed three-level tree for the cascading selects,
// optionally pruned by a search term.
func getTaxonomy(c echo.Context) error {
	tax := taxonomy.Default()
	if q := c.QueryParam("q"); q != "" {
		tax = tax.Search(q)
	}
	return ok(c, tax)
}
