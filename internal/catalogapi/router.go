// Package catalogapi exposes the public storefront API: the filterable
// product listing, product details with related items, the home page feed,
// derived categories and a live SSE stream of the listing.
package catalogapi

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ListingPath is where a not-found response points the client back to.
const ListingPath = "/api/catalog/products"

// InitRouter registers all storefront routes. The web server must be
// initialized first.
func InitRouter() {
	registerProductRoutes()
	registerHomeRoutes()
	registerCategoryRoutes()
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
