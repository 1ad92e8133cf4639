package order

import (
	"time"

	"github.com/menna-17/backend-craftora/internal/features/product"
	"github.com/google/uuid"
)

// Requests

type PlaceOrderItem struct {
	Product  uuid.UUID `json:"product" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type PlaceOrderRequest struct {
	Items         []PlaceOrderItem `json:"items" validate:"dive"`
	User          *uuid.UUID       `json:"user"`
	ShippingInfo  ShippingInfo     `json:"shippingInfo"`
	PaymentMethod string           `json:"paymentMethod"`
	CardNumber    string           `json:"cardNumber"`
	CardName      string           `json:"cardName"`
	Expiry        string           `json:"expiry"`
	CVV           string           `json:"cvv"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Responses

// OrderLineDTO is a frozen order line with its product reference resolved to
// the full record. Product is nil when the referenced product no longer
// exists; the frozen quantity and price still stand.
type OrderLineDTO struct {
	Product  *product.Product `json:"product"`
	Quantity int              `json:"quantity"`
	Price    float64          `json:"price"`
}

// OrderDTO is what order listings return: the stored snapshot with every
// line's product resolved.
type OrderDTO struct {
	OrderID       uuid.UUID      `json:"order_id"`
	UserID        *uuid.UUID     `json:"user,omitempty"`
	ShippingInfo  ShippingInfo   `json:"shippingInfo"`
	PaymentMethod string         `json:"paymentMethod"`
	CardNumber    string         `json:"cardNumber"`
	CardName      string         `json:"cardName"`
	Expiry        string         `json:"expiry"`
	CVV           string         `json:"cvv"`
	Items         []OrderLineDTO `json:"items"`
	TotalPrice    float64        `json:"totalPrice"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
}
