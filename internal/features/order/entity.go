package order

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether status is one of the four order states. There
// is no transition graph; any valid status may follow any other.
func ValidStatus(status string) bool {
	switch status {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}

	return false
}

// Order is an immutable snapshot taken at placement time. Line prices and
// the total are frozen; later product price changes never touch them.
type Order struct {
	OrderID       uuid.UUID    `json:"order_id"`
	UserID        *uuid.UUID   `json:"user,omitempty"`
	ShippingInfo  ShippingInfo `json:"shippingInfo"`
	PaymentMethod string       `json:"paymentMethod"`
	CardNumber    string       `json:"cardNumber"`
	CardName      string       `json:"cardName"`
	Expiry        string       `json:"expiry"`
	CVV           string       `json:"cvv"`
	Items         []OrderItem  `json:"items"`
	TotalPrice    float64      `json:"totalPrice"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

type OrderItem struct {
	ProductID uuid.UUID `json:"product"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

// ShippingInfo is captured as-is from the placement payload.
type ShippingInfo struct {
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Address     string `json:"address,omitempty"`
	Apartment   string `json:"apartment,omitempty"`
	City        string `json:"city,omitempty"`
	Governorate string `json:"governorate,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Country     string `json:"country,omitempty"`
}
