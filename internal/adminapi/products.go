package adminapi

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/prayani09/ShriyashWork/internal/catalog"
	"github.com/prayani09/ShriyashWork/internal/domain"
	"github.com/prayani09/ShriyashWork/internal/store"
	"github.com/prayani09/ShriyashWork/internal/taxonomy"
	"github.com/prayani09/ShriyashWork/internal/webserver"
)

// registerProductRoutes registers product CRUD and CSV endpoints
func registerProductRoutes() {
	webserver.ApiGET("/admin/api/products", listProducts)
	webserver.ApiGET("/admin/api/products/export", exportProducts)
	webserver.ApiGET("/admin/api/products/:id", getProduct)
	webserver.ApiPOST("/admin/api/products", createProduct)
	webserver.ApiPOST("/admin/api/products/import", importProducts)
	webserver.ApiPUT("/admin/api/products/:id", updateProduct)
	webserver.ApiDELETE("/admin/api/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	entries := webserver.GetView(c).Entries()
	entries = catalog.ApplyAdmin(entries,
		c.QueryParam("q"),
		c.QueryParam("category"),
		c.QueryParam("subcategory"),
		c.QueryParam("item"),
	)
	return ok(c, map[string]interface{}{
		"total":    len(entries),
		"products": entries,
	})
}

func getProduct(c echo.Context) error {
	id := c.Param("id")
	rec, err := webserver.GetStore(c).Get(store.ProductsPath + "/" + id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read product", err.Error())
	}
	p, err := domain.ProductFromRecord(id, rec)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to decode product", err.Error())
	}
	return ok(c, p)
}

// validateDraft applies payload validation plus the taxonomy check: a
// category known to the fixed tree must carry a subcategory/item that
// belongs to it. Free-text categories outside the tree stay allowed.
func validateDraft(c echo.Context, draft *domain.ProductDraft) error {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Category = strings.TrimSpace(draft.Category)
	if err := c.Validate(draft); err != nil {
		return err
	}
	tax := taxonomy.Default()
	if tax.HasCategory(draft.Category) {
		if !tax.Contains(draft.Category, draft.Subcategory, draft.Item) {
			return errors.Errorf("subcategory/item does not belong to category %q", draft.Category)
		}
	}
	return nil
}

func createProduct(c echo.Context) error {
	var draft domain.ProductDraft
	if err := c.Bind(&draft); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := validateDraft(c, &draft); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	st := webserver.GetStore(c)
	now := time.Now()
	id, err := st.Append(store.ProductsPath, draft.Record(now, now))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create product", err.Error())
	}
	ensureCategory(st, draft.Category)

	p, _ := domain.ProductFromRecord(id, draft.Record(now, now))
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id := c.Param("id")
	st := webserver.GetStore(c)

	existing, err := st.Get(store.ProductsPath + "/" + id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read product", err.Error())
	}

	var draft domain.ProductDraft
	if err := c.Bind(&draft); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := validateDraft(c, &draft); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	// Overwrite every field but keep the original creation time.
	rec := draft.Record(time.Now(), time.Now())
	if createdAt, exists := existing["createdAt"]; exists {
		rec["createdAt"] = createdAt
	}
	if err := st.Set(store.ProductsPath+"/"+id, rec); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update product", err.Error())
	}
	ensureCategory(st, draft.Category)

	p, _ := domain.ProductFromRecord(id, rec)
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	st := webserver.GetStore(c)
	if _, err := st.Get(store.ProductsPath + "/" + id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read product", err.Error())
	}
	if err := st.Remove(store.ProductsPath + "/" + id); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

func exportProducts(c echo.Context) error {
	entries := webserver.GetView(c).Entries()
	products := make([]domain.Product, 0, len(entries))
	for _, e := range entries {
		products = append(products, e.Product)
	}
	data, err := gocsv.MarshalBytes(&products)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export products", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

type importRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// importProducts appends one product per CSV row. Bad rows are reported and
// skipped; the batch never aborts.
func importProducts(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read csv body", err.Error())
	}
	var drafts []domain.ProductDraft
	if err := gocsv.UnmarshalBytes(body, &drafts); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse csv", err.Error())
	}

	st := webserver.GetStore(c)
	var created []string
	var rowErrors []importRowError
	for i := range drafts {
		draft := drafts[i]
		if err := validateDraft(c, &draft); err != nil {
			rowErrors = append(rowErrors, importRowError{Row: i + 1, Error: err.Error()})
			continue
		}
		now := time.Now()
		id, err := st.Append(store.ProductsPath, draft.Record(now, now))
		if err != nil {
			rowErrors = append(rowErrors, importRowError{Row: i + 1, Error: err.Error()})
			continue
		}
		ensureCategory(st, draft.Category)
		created = append(created, id)
	}

	zap.S().Infof("csv import: %d created, %d rejected", len(created), len(rowErrors))
	return ok(c, map[string]interface{}{
		"created": created,
		"errors":  rowErrors,
	})
}
