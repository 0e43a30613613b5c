package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/medwear/storefront/internal/catalog/domain"
	"github.com/medwear/storefront/internal/catalog/usecase/query"
	"github.com/medwear/storefront/kafka"
	"github.com/medwear/storefront/pkg/logger"
)

// CatalogHandler serves the product browsing surface: listing with the
// filter/sort/paginate pipeline, product detail, facets and highlight
// collections.
type CatalogHandler struct {
	listHandler       *query.ListProductsHandler
	getProductHandler *query.GetProductHandler
	facetsHandler     *query.GetFacetsHandler
	highlightsHandler *query.GetHighlightsHandler

	events *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	catalogSize    prometheus.Gauge
}

// NewCatalogHandler creates the handler and registers its metrics on reg.
// events may be nil when analytics is disabled.
func NewCatalogHandler(repo domain.CatalogRepository, events *kafka.Publisher, reg prometheus.Registerer) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_requests_total",
			Help: "Total number of catalog requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	catalogSize := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_catalog_products",
			Help: "Number of products in the loaded catalog",
		},
	)

	reg.MustRegister(requestCounter, requestLatency, catalogSize)

	h := &CatalogHandler{
		listHandler:       query.NewListProductsHandler(repo),
		getProductHandler: query.NewGetProductHandler(repo),
		facetsHandler:     query.NewGetFacetsHandler(repo),
		highlightsHandler: query.NewGetHighlightsHandler(repo),
		events:            events,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		catalogSize:       catalogSize,
	}
	return h
}

// Response is the JSON envelope shared by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes mounts the catalog endpoints on the router.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/facets", h.metricsMiddleware("/api/facets", h.GetFacets)).Methods("GET")
	router.HandleFunc("/api/highlights", h.metricsMiddleware("/api/highlights", h.GetHighlights)).Methods("GET")
}

// SetCatalogSize records the loaded catalog size gauge.
func (h *CatalogHandler) SetCatalogSize(n int) {
	h.catalogSize.Set(float64(n))
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spec := h.buildFilterSpec(r)
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	result, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{
		Spec:     spec,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// buildFilterSpec assembles the filter spec from query parameters. Invalid
// or missing numeric bounds fall back to the catalog's facet price range,
// mirroring how the filter controls are initialized client-side.
func (h *CatalogHandler) buildFilterSpec(r *http.Request) domain.FilterSpec {
	q := r.URL.Query()

	facets, _ := h.facetsHandler.Handle(r.Context(), query.GetFacetsQuery{})

	minPrice := facets.PriceRange.Min
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		minPrice = v
	}
	maxPrice := facets.PriceRange.Max
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		maxPrice = v
	}

	sortBy := domain.SortRatingDesc
	switch domain.SortKey(q.Get("sort")) {
	case domain.SortPriceAsc:
		sortBy = domain.SortPriceAsc
	case domain.SortPriceDesc:
		sortBy = domain.SortPriceDesc
	case domain.SortNameAsc:
		sortBy = domain.SortNameAsc
	}

	return domain.FilterSpec{
		Query:      q.Get("q"),
		Categories: splitCSV(q.Get("categories")),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Tags:       splitCSV(q.Get("tags")),
		SortBy:     sortBy,
	}
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	detail, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Product not found",
			})
			return
		}
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	// Fire-and-forget analytics
	if h.events != nil {
		event := kafka.ProductViewedEvent{
			ProductID: detail.Product.ID,
			Name:      detail.Product.Name,
			Category:  detail.Product.Category,
		}
		if err := h.events.PublishProductViewed(r.Context(), event); err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Failed to publish product viewed event")
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    detail,
	})
}

// GetFacets handles GET /api/facets
func (h *CatalogHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.facetsHandler.Handle(r.Context(), query.GetFacetsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get facets")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get facets",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    facets,
	})
}

// GetHighlights handles GET /api/highlights
func (h *CatalogHandler) GetHighlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	products, err := h.highlightsHandler.Handle(r.Context(), query.GetHighlightsQuery{
		Tab:   domain.HighlightTab(q.Get("tab")),
		Limit: limit,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get highlights")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get highlights",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    products,
	})
}

// RegisterHealthCheck mounts the liveness endpoint.
func (h *CatalogHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Storefront service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
