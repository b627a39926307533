package catalogapi

import (
	"github.com/labstack/echo/v4"

	"github.com/prayani09/ShriyashWork/internal/catalog"
	"github.com/prayani09/ShriyashWork/internal/webserver"
)

func registerHomeRoutes() {
	webserver.ApiGET("/api/catalog/home", getHome)
}

// getHome serves the home page feed: the favorites rail plus one
// newest-five rail per category.
func getHome(c echo.Context) error {
	entries := webserver.GetView(c).Entries()

	sections := catalog.HomeSections(entries, catalog.DefaultSectionSize)
	for i := range sections {
		sections[i].Products = renderEntries(sections[i].Products)
	}

	return ok(c, map[string]interface{}{
		"favorites": renderEntries(catalog.Favorites(entries)),
		"sections":  sections,
	})
}
