package catalogapi

import (
	"context"
	stdjson "encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prayani09/ShriyashWork/internal/catalog"
	"github.com/prayani09/ShriyashWork/internal/domain"
	"github.com/prayani09/ShriyashWork/internal/store"
	"github.com/prayani09/ShriyashWork/internal/webserver"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"), 1)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedProduct(t *testing.T, st *store.Store, draft domain.ProductDraft, created time.Time) string {
	t.Helper()
	id, err := st.Append(store.ProductsPath, draft.Record(created, created))
	if err != nil {
		t.Fatalf("seed %q: %v", draft.Name, err)
	}
	return id
}

func newLiveView(t *testing.T, st *store.Store) *catalog.View {
	t.Helper()
	v, err := catalog.NewView(st, store.ProductsPath)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}
	t.Cleanup(v.Close)
	return v
}

func newTestContext(t *testing.T, target string, st *store.Store, view *catalog.View) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	webserver.Inject(c, nil, st, view)
	return c, rec
}

func dataOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	if err := stdjson.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	data, ok := env["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response data is not an object: %v", env)
	}
	return data
}

func TestListProductsFiltersAndSorts(t *testing.T) {
	st := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProduct(t, st, domain.ProductDraft{Name: "Desk Lamp", Category: "Lights", Price: 500, Rating: 4.2}, base)
	seedProduct(t, st, domain.ProductDraft{Name: "Floor Lamp", Category: "Lights", Price: 1200, Rating: 4.6}, base.Add(time.Hour))
	seedProduct(t, st, domain.ProductDraft{Name: "Sofa", Category: "Furniture", Price: 15000, Rating: 4.8}, base.Add(2*time.Hour))
	view := newLiveView(t, st)

	c, rec := newTestContext(t, "/api/catalog/products?category=Lights&sort=price-high", st, view)
	if err := listProducts(c); err != nil {
		t.Fatalf("listProducts: %v", err)
	}
	data := dataOf(t, rec)
	if total, _ := data["total"].(float64); total != 2 {
		t.Fatalf("total = %v, want 2; body = %s", data["total"], rec.Body.String())
	}
	products := data["products"].([]interface{})
	first := products[0].(map[string]interface{})["product"].(map[string]interface{})
	if first["name"] != "Floor Lamp" {
		t.Errorf("price-high order wrong, first = %v", first["name"])
	}
}

func TestListProductsPlaceholderImage(t *testing.T) {
	st := newTestStore(t)
	seedProduct(t, st, domain.ProductDraft{Name: "Bare", Category: "Lights", Rating: 4}, time.Now())
	view := newLiveView(t, st)

	c, rec := newTestContext(t, "/api/catalog/products", st, view)
	if err := listProducts(c); err != nil {
		t.Fatalf("listProducts: %v", err)
	}
	if !strings.Contains(rec.Body.String(), placeholderImageURL) {
		t.Error("missing image not replaced with placeholder")
	}
}

func TestGetProductWithRelated(t *testing.T) {
	st := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id := seedProduct(t, st, domain.ProductDraft{Name: "Desk Lamp", Category: "Lights", Rating: 4.2}, base)
	seedProduct(t, st, domain.ProductDraft{Name: "Floor Lamp", Category: "Lights", Rating: 4.6}, base.Add(time.Hour))
	seedProduct(t, st, domain.ProductDraft{Name: "Sofa", Category: "Furniture", Rating: 4.8}, base.Add(2*time.Hour))
	view := newLiveView(t, st)

	c, rec := newTestContext(t, "/api/catalog/products/"+id, st, view)
	c.SetParamNames("id")
	c.SetParamValues(id)

	if err := getProduct(c); err != nil {
		t.Fatalf("getProduct: %v", err)
	}
	data := dataOf(t, rec)
	product := data["product"].(map[string]interface{})
	if product["id"] != id || product["name"] != "Desk Lamp" {
		t.Errorf("product = %v", product)
	}
	related := data["related"].([]interface{})
	if len(related) != 1 {
		t.Fatalf("related = %d entries, want 1 (same category, self excluded)", len(related))
	}
	rel := related[0].(map[string]interface{})["product"].(map[string]interface{})
	if rel["name"] != "Floor Lamp" {
		t.Errorf("related = %v", rel["name"])
	}
}

func TestGetProductNotFoundPointsAtListing(t *testing.T) {
	st := newTestStore(t)
	view := newLiveView(t, st)

	c, rec := newTestContext(t, "/api/catalog/products/unknown", st, view)
	c.SetParamNames("id")
	c.SetParamValues("unknown")

	if err := getProduct(c); err != nil {
		t.Fatalf("getProduct: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var env map[string]interface{}
	if err := stdjson.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	detail := env["detail"].(map[string]interface{})
	if detail["listing"] != ListingPath {
		t.Errorf("detail = %v, want listing fallback", detail)
	}
}

// streamRecorder is a response writer the test can read while the stream
// handler is still writing.
type streamRecorder struct {
	mu     sync.Mutex
	header http.Header
	buf    strings.Builder
	status int
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: make(http.Header)}
}

func (w *streamRecorder) Header() http.Header { return w.header }

func (w *streamRecorder) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *streamRecorder) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = code
}

func (w *streamRecorder) Flush() {}

func (w *streamRecorder) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestStreamProductsDeliversAttachEvent(t *testing.T) {
	st := newTestStore(t)
	seedProduct(t, st, domain.ProductDraft{Name: "Desk Lamp", Category: "Lights", Rating: 4.2}, time.Now())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/catalog/stream", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	rec := newStreamRecorder()
	c := e.NewContext(req, rec)
	webserver.Inject(c, nil, st, nil)

	done := make(chan error, 1)
	go func() { done <- streamProducts(c) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(rec.String(), "data: ") {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("streamProducts: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop on client disconnect")
	}

	body := rec.String()
	if !strings.HasPrefix(body, "data: ") {
		t.Fatalf("stream body = %q", body)
	}
	if !strings.Contains(body, "Desk Lamp") {
		t.Error("attach event missing the seeded product")
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
}
