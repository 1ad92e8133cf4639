package product

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Requests

type CreateProductRequest struct {
	SellerID    uuid.UUID      `json:"-"`
	Name        string         `json:"name" validate:"required,min=2,max=120,noAllRepeatingChars"`
	Description string         `json:"description" validate:"max=2000"`
	Price       float64        `json:"price" validate:"gte=0"`
	Category    string         `json:"category"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Image       string         `json:"image"`
	Extra       map[string]any `json:"-"`
}

// UnmarshalJSON keeps the core schema typed while collecting every unknown
// payload field into Extra instead of dropping it.
func (p *CreateProductRequest) UnmarshalJSON(data []byte) error {
	type alias CreateProductRequest

	var core alias
	if err := json.Unmarshal(data, &core); err != nil {
		return err
	}

	extra, err := extraFields(data)
	if err != nil {
		return err
	}
	core.Extra = extra

	*p = CreateProductRequest(core)

	return nil
}

type UpdateProductRequest struct {
	ProductID   uuid.UUID      `json:"-"`
	ActorID     uuid.UUID      `json:"-"`
	ActorRole   string         `json:"-"`
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Price       *float64       `json:"price" validate:"omitempty,gte=0"`
	Category    *string        `json:"category"`
	Stock       *int           `json:"stock" validate:"omitempty,gte=0"`
	Image       *string        `json:"image"`
	Extra       map[string]any `json:"-"`
}

func (p *UpdateProductRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateProductRequest

	var core alias
	if err := json.Unmarshal(data, &core); err != nil {
		return err
	}

	extra, err := extraFields(data)
	if err != nil {
		return err
	}
	core.Extra = extra

	*p = UpdateProductRequest(core)

	return nil
}

type FilterOpts struct {
	Category string  `json:"category"`
	MinPrice float64 `json:"minPrice" validate:"min=0"`
	MaxPrice float64 `json:"maxPrice" validate:"min=0"`
	Search   string  `json:"search"`
}

type PageOpts struct {
	Page  uint64 `json:"page" validate:"min=1"`
	Limit uint64 `json:"limit" validate:"min=1"`
}

type GetAllProductsRequestQuery struct {
	FilterOpts FilterOpts `json:"filterOpts"`
	PageOpts   PageOpts   `json:"pageOpts"`
}

// Responses

type GetAllProductsResponse struct {
	Total    int        `json:"total"`
	Page     uint64     `json:"page"`
	Limit    uint64     `json:"limit"`
	Products []*Product `json:"products"`
}

// coreFields are the payload keys owned by the typed schema; anything else
// lands in Extra.
var coreFields = map[string]struct{}{
	"name":        {},
	"description": {},
	"price":       {},
	"category":    {},
	"stock":       {},
	"image":       {},
}

func extraFields(data []byte) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var extra map[string]any
	for key, rawValue := range raw {
		if _, isCore := coreFields[key]; isCore {
			continue
		}

		var value any
		if err := json.Unmarshal(rawValue, &value); err != nil {
			return nil, err
		}

		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = value
	}

	return extra, nil
}
