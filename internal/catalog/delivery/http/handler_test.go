package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medwear/storefront/internal/catalog/domain"
	"github.com/medwear/storefront/internal/catalog/repository"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	repo, err := repository.NewMemoryCatalogFromSeed()
	require.NoError(t, err)

	handler := NewCatalogHandler(repo, nil, prometheus.NewRegistry())
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router)
	return router
}

func doGet(t *testing.T, router *mux.Router, url string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doGet(t, router, "/api/products")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var page struct {
		Items      []domain.Product `json:"items"`
		TotalItems int              `json:"total_items"`
		Page       int              `json:"page"`
		PageSize   int              `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(data, &page))

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 12, page.PageSize)
	assert.Len(t, page.Items, 12)
	assert.Equal(t, 20, page.TotalItems)

	// The default ordering is best rated first.
	for i := 1; i < len(page.Items); i++ {
		assert.GreaterOrEqual(t, page.Items[i-1].Rating, page.Items[i].Rating)
	}
}

func TestListProductsFiltered(t *testing.T) {
	router := newTestRouter(t)

	_, resp := doGet(t, router, "/api/products?categories=Lab+Coats&sort=price-asc")
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var page struct {
		Items []domain.Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &page))

	require.NotEmpty(t, page.Items)
	for _, p := range page.Items {
		assert.Equal(t, "Lab Coats", p.Category)
	}
	for i := 1; i < len(page.Items); i++ {
		assert.LessOrEqual(t, page.Items[i-1].Price, page.Items[i].Price)
	}
}

func TestListProductsPriceBounds(t *testing.T) {
	router := newTestRouter(t)

	_, resp := doGet(t, router, "/api/products?min_price=30&max_price=50&page_size=100")
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var page struct {
		Items []domain.Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &page))

	for _, p := range page.Items {
		assert.GreaterOrEqual(t, p.Price, 30.0)
		assert.LessOrEqual(t, p.Price, 50.0)
	}
}

func TestListProductsExtremePageNumber(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doGet(t, router, "/api/products?page=900000000000000000")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var page struct {
		Items      []domain.Product `json:"items"`
		TotalItems int              `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal(data, &page))

	assert.Empty(t, page.Items)
	assert.Equal(t, 20, page.TotalItems)
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doGet(t, router, "/api/products/scrub-top-classic")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var detail struct {
		Product domain.Product   `json:"product"`
		Related []domain.Product `json:"related"`
	}
	require.NoError(t, json.Unmarshal(data, &detail))

	assert.Equal(t, "scrub-top-classic", detail.Product.ID)
	assert.LessOrEqual(t, len(detail.Related), 4)
	for _, p := range detail.Related {
		assert.Equal(t, detail.Product.Category, p.Category)
		assert.NotEqual(t, detail.Product.ID, p.ID)
	}
}

func TestGetProductNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doGet(t, router, "/api/products/no-such-product")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Product not found", resp.Error)
}

func TestGetFacets(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doGet(t, router, "/api/facets")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var facets domain.Facets
	require.NoError(t, json.Unmarshal(data, &facets))

	assert.Contains(t, facets.Categories, "Scrub Tops")
	assert.Contains(t, facets.Categories, "Footwear")
	assert.Less(t, facets.PriceRange.Min, facets.PriceRange.Max)
}

func TestGetHighlights(t *testing.T) {
	router := newTestRouter(t)

	_, resp := doGet(t, router, "/api/highlights?tab=sale")
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(data, &products))

	require.NotEmpty(t, products)
	assert.LessOrEqual(t, len(products), 4)
	for _, p := range products {
		assert.NotNil(t, p.OriginalPrice)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doGet(t, router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}
