package cart

import (
	"context"
	"errors"

	"github.com/menna-17/backend-craftora/internal/features/product"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	findByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	upsertItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*Cart, error)
}

type productServicer interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*product.Product, error)
}

type service struct {
	store          Storer
	productService productServicer
}

func NewService(store Storer, productService productServicer) *service {
	return &service{
		store:          store,
		productService: productService,
	}
}

// getCart returns the user's cart with every line's product resolved. A user
// without a cart gets an empty cart, not an error.
func (s *service) getCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	cart, err := s.store.findByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.resolveCart(ctx, cart)
}

// addItem merges quantity into an existing line for the same product or
// appends a new line, then returns the resolved cart.
func (s *service) addItem(ctx context.Context, userID uuid.UUID, item *AddItemRequest) (*CartDTO, error) {
	_, err := s.productService.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.upsertItem(
		ctx,
		userID,
		item.ProductID,
		item.Quantity,
	)
	if err != nil {
		return nil, err
	}

	return s.resolveCart(ctx, cart)
}

func (s *service) resolveCart(ctx context.Context, cart *Cart) (*CartDTO, error) {
	resolved := &CartDTO{
		CartID: cart.CartID,
		Items:  make([]CartLineDTO, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		p, err := s.productService.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, servererrors.ErrProductNotFound) {
				// deleted product; keep the line, drop the reference
				p = nil
			} else {
				return nil, err
			}
		}

		resolved.Items = append(resolved.Items, CartLineDTO{
			Product:  p,
			Quantity: item.Quantity,
		})
	}

	return resolved, nil
}
