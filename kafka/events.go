package kafka

import "time"

// CartItemAddedEvent is emitted whenever a product is added to a cart.
type CartItemAddedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SessionID string    `json:"session_id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Variant   string    `json:"variant,omitempty"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductViewedEvent is emitted when a product detail view is served.
type ProductViewedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeCartItemAdded = "cart.item_added"
	EventTypeProductViewed = "product.viewed"
)

// Kafka topics
const (
	TopicCartEvents   = "storefront-cart-events"
	TopicProductViews = "storefront-product-views"
)
