package catalogapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/prayani09/ShriyashWork/internal/catalog"
	"github.com/prayani09/ShriyashWork/internal/domain"
	"github.com/prayani09/ShriyashWork/internal/store"
	"github.com/prayani09/ShriyashWork/internal/webserver"
)

// placeholderImageURL substitutes missing product images at render time.
const placeholderImageURL = "https://via.placeholder.com/500x500?text=Image+Not+Found"

func registerProductRoutes() {
	webserver.ApiGET("/api/catalog/products", listProducts)
	webserver.ApiGET("/api/catalog/stream", streamProducts)
	webserver.ApiGET("/api/catalog/products/:id", getProduct)
}

func withPlaceholder(p domain.Product) domain.Product {
	if p.ImageURL == "" {
		p.ImageURL = placeholderImageURL
	}
	return p
}

func renderEntries(entries []catalog.Entry) []catalog.Entry {
	out := make([]catalog.Entry, len(entries))
	for i, e := range entries {
		out[i] = catalog.Entry{ID: e.ID, Product: withPlaceholder(e.Product)}
	}
	return out
}

// listProducts serves the filtered, sorted listing. The `search` and
// `category` query parameters double as the listing page's URL interface.
func listProducts(c echo.Context) error {
	spec := catalog.SpecFromValues(c.QueryParams())
	entries := catalog.Apply(webserver.GetView(c).Entries(), spec)
	return ok(c, map[string]interface{}{
		"total":    len(entries),
		"spec":     spec,
		"products": renderEntries(entries),
	})
}

func getProduct(c echo.Context) error {
	id := c.Param("id")
	rec, err := webserver.GetStore(c).Get(store.ProductsPath + "/" + id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", map[string]interface{}{
				"listing": ListingPath,
			})
		}
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read product", err.Error())
	}
	p, err := domain.ProductFromRecord(id, rec)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to decode product", err.Error())
	}

	related := catalog.Related(webserver.GetView(c).Entries(), id, p.Category, 4)
	return ok(c, map[string]interface{}{
		"product": withPlaceholder(p),
		"related": renderEntries(related),
	})
}

// streamProducts pushes the filtered listing as server-sent events: one
// event on attach and one per store change. The subscription is released
// when the client disconnects.
func streamProducts(c echo.Context) error {
	spec := catalog.SpecFromValues(c.QueryParams())

	sub, err := webserver.GetStore(c).Subscribe(store.ProductsPath)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to subscribe", err.Error())
	}
	defer sub.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case snap, alive := <-sub.Updates():
			if !alive {
				return nil
			}
			entries := catalog.Apply(catalog.EntriesFromSnapshot(snap), spec)
			payload, err := json.Marshal(map[string]interface{}{
				"total":    len(entries),
				"products": renderEntries(entries),
			})
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
