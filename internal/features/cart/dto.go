package cart

import (
	"github.com/menna-17/backend-craftora/internal/features/product"
	"github.com/google/uuid"
)

// Requests

type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// Responses

// CartLineDTO is a cart line with its product reference resolved to the full
// record. Product is nil when the referenced product no longer exists; the
// reference is weak.
type CartLineDTO struct {
	Product  *product.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

type CartDTO struct {
	CartID uuid.UUID     `json:"cart_id"`
	Items  []CartLineDTO `json:"items"`
}
