// Package adminapi exposes the admin panel's JSON API: product CRUD, stored
// category management, CSV import/export, the taxonomy feed and a small
// dashboard.
package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InitRouter registers all admin routes. The web server must be initialized
// first.
func InitRouter() {
	registerProductRoutes()
	registerCategoryRoutes()
	registerTaxonomyRoutes()
	registerDashboardRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"code": 0, "data": data})
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": msg,
		"detail":  detail,
	})
}
