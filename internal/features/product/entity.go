package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is the typed catalog record. Extra carries any fields outside the
// core schema (imported catalog dumps ship columns like title, store,
// average_rating) without letting them bleed into the typed core.
type Product struct {
	ProductID   uuid.UUID      `json:"product_id"`
	SellerID    *uuid.UUID     `json:"seller,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	Stock       int            `json:"stock"`
	Image       string         `json:"image"`
	Extra       map[string]any `json:"extra,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"-"`
}
