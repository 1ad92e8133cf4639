package product

import (
	"context"
	"strings"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	createOne(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	findAll(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error)
	findByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	findBySeller(ctx context.Context, sellerID uuid.UUID) ([]*Product, error)
	updateOne(ctx context.Context, update *UpdateProductRequest) (*Product, error)
	deleteOne(ctx context.Context, productID uuid.UUID) error
	decrementStock(ctx context.Context, productID uuid.UUID, quantity int) (decremented bool, err error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

// createProduct attributes the new product to the acting seller regardless
// of anything the payload claims.
func (s *service) createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	newProduct.Name = strings.TrimSpace(newProduct.Name)
	newProduct.Description = strings.TrimSpace(newProduct.Description)
	newProduct.Image = strings.TrimSpace(newProduct.Image)

	return s.store.createOne(ctx, newProduct)
}

func (s *service) getAllProducts(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error) {
	return s.store.findAll(ctx, queryItems)
}

func (s *service) getProduct(ctx context.Context, productID uuid.UUID) (*Product, error) {
	return s.store.findByID(ctx, productID)
}

func (s *service) getSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*Product, error) {
	return s.store.findBySeller(ctx, sellerID)
}

// updateProduct lets an Admin update any product and a Seller only their
// own. A missing image field keeps the stored one.
func (s *service) updateProduct(ctx context.Context, update *UpdateProductRequest) (*Product, error) {
	updated, err := s.store.updateOne(ctx, update)
	if err != nil {
		return nil, err
	}

	if updated == nil {
		// either the product does not exist or the seller does not own it;
		// both surface as not found, matching the update's row predicate.
		return nil, servererrors.ErrProductNotFound
	}

	return updated, nil
}

func (s *service) deleteProduct(ctx context.Context, actorID uuid.UUID, actorRole string, productID uuid.UUID) error {
	existing, err := s.store.findByID(ctx, productID)
	if err != nil {
		return err
	}

	if actorRole == auth.RoleSeller &&
		(existing.SellerID == nil || *existing.SellerID != actorID) {
		return servererrors.ErrAccessDenied
	}

	return s.store.deleteOne(ctx, productID)
}

// GetProduct exposes catalog lookups to other features (order placement).
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*Product, error) {
	return s.store.findByID(ctx, productID)
}

// DecrementStock issues a single conditional decrement of the product's
// stock. It reports false without error when current stock cannot cover
// quantity, so stock never goes negative even under concurrent orders.
func (s *service) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	return s.store.decrementStock(ctx, productID, quantity)
}

// SellerProductIDs returns the ids of every product owned by sellerID.
func (s *service) SellerProductIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error) {
	products, err := s.store.findBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ProductID)
	}

	return ids, nil
}
