package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	cart "github.com/medwear/storefront/internal/cart/domain"
	"github.com/medwear/storefront/internal/cart/usecase/command"
	"github.com/medwear/storefront/internal/cart/usecase/query"
	catalog "github.com/medwear/storefront/internal/catalog/domain"
	"github.com/medwear/storefront/kafka"
	"github.com/medwear/storefront/pkg/logger"
)

// CartHandler serves the shopping cart: read, add, set quantity, remove and
// clear, all scoped to the request's session.
type CartHandler struct {
	addHandler     *command.AddItemHandler
	updateHandler  *command.UpdateQuantityHandler
	removeHandler  *command.RemoveItemHandler
	clearHandler   *command.ClearCartHandler
	getCartHandler *query.GetCartHandler

	events *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	itemsAdded     prometheus.Counter
}

// NewCartHandler creates the handler and registers its metrics on reg.
// events may be nil when analytics is disabled.
func NewCartHandler(carts cart.Repository, catalogRepo catalog.CatalogRepository, events *kafka.Publisher, reg prometheus.Registerer) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_requests_total",
			Help: "Total number of cart requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_cart_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	itemsAdded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cart_items_added_total",
			Help: "Total number of add-to-cart operations",
		},
	)

	reg.MustRegister(requestCounter, requestLatency, itemsAdded)

	return &CartHandler{
		addHandler:     command.NewAddItemHandler(carts, catalogRepo),
		updateHandler:  command.NewUpdateQuantityHandler(carts),
		removeHandler:  command.NewRemoveItemHandler(carts),
		clearHandler:   command.NewClearCartHandler(carts),
		getCartHandler: query.NewGetCartHandler(carts),
		events:         events,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		itemsAdded:     itemsAdded,
	}
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
func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes mounts the cart endpoints, all behind the session
// middleware.
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	sub := router.PathPrefix("/api/cart").Subrouter()
	sub.Use(SessionMiddleware)

	sub.HandleFunc("", h.metricsMiddleware("/api/cart", h.GetCart)).Methods("GET")
	sub.HandleFunc("", h.metricsMiddleware("/api/cart", h.ClearCart)).Methods("DELETE")
	sub.HandleFunc("/items", h.metricsMiddleware("/api/cart/items", h.AddItem)).Methods("POST")
	sub.HandleFunc("/items", h.metricsMiddleware("/api/cart/items", h.UpdateQuantity)).Methods("PUT")
	sub.HandleFunc("/items", h.metricsMiddleware("/api/cart/items", h.RemoveItem)).Methods("DELETE")
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.getCartHandler.Handle(r.Context(), query.GetCartQuery{
		SessionID: SessionFromContext(r.Context()),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load cart")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to load cart",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Variant   string `json:"variant"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.AddItemCommand{
		SessionID: SessionFromContext(r.Context()),
		ProductID: req.ProductID,
		Variant:   req.Variant,
	}

	summary, err := h.addHandler.Handle(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Product not found",
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to add cart item")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.itemsAdded.Inc()
	h.publishItemAdded(r, cmd, summary)

	// The message doubles as the transient "item added" acknowledgment
	// shown by the client.
	added := findEntry(summary, req.ProductID, req.Variant)
	message := "Item added to cart"
	if added != nil {
		message = fmt.Sprintf("%s added to cart", added.Product.Name)
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    summary,
	})
}

// UpdateQuantity handles PUT /api/cart/items
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Variant   string `json:"variant"`
		Quantity  int    `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	summary, err := h.updateHandler.Handle(r.Context(), command.UpdateQuantityCommand{
		SessionID: SessionFromContext(r.Context()),
		ProductID: req.ProductID,
		Variant:   req.Variant,
		Quantity:  req.Quantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update cart quantity")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// RemoveItem handles DELETE /api/cart/items
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Variant   string `json:"variant"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	summary, err := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{
		SessionID: SessionFromContext(r.Context()),
		ProductID: req.ProductID,
		Variant:   req.Variant,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to remove cart item")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	err := h.clearHandler.Handle(r.Context(), command.ClearCartCommand{
		SessionID: SessionFromContext(r.Context()),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to clear cart")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to clear cart",
		})
		return
	}

	summary := cart.Summarize(&cart.Cart{})
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Cart cleared",
		Data:    summary,
	})
}

// publishItemAdded emits the analytics event for a successful add.
func (h *CartHandler) publishItemAdded(r *http.Request, cmd command.AddItemCommand, summary *cart.Summary) {
	if h.events == nil {
		return
	}

	event := kafka.CartItemAddedEvent{
		SessionID: cmd.SessionID,
		ProductID: cmd.ProductID,
		Variant:   cmd.Variant,
		Quantity:  1,
	}
	if entry := findEntry(summary, cmd.ProductID, cmd.Variant); entry != nil {
		event.Name = entry.Product.Name
		event.UnitPrice = entry.Product.Price
		event.Quantity = entry.Quantity
	}

	if err := h.events.PublishCartItemAdded(r.Context(), event); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to publish cart item added event")
	}
}

func findEntry(summary *cart.Summary, productID, variant string) *cart.Entry {
	for i := range summary.Entries {
		if summary.Entries[i].Product.ID == productID && summary.Entries[i].Variant == variant {
			return &summary.Entries[i]
		}
	}
	return nil
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
