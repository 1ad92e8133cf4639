package order

import (
	"context"
	"errors"
	"log"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/eventengine"
	"github.com/menna-17/backend-craftora/internal/eventengine/event"
	"github.com/menna-17/backend-craftora/internal/features/product"
	"github.com/menna-17/backend-craftora/internal/middlewares"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	createOne(ctx context.Context, newOrder *Order) error
	findByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	findAll(ctx context.Context) ([]*Order, error)
	findContainingProducts(ctx context.Context, productIDs []uuid.UUID) ([]*Order, error)
	findByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	updateStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

type productServicer interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*product.Product, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (decremented bool, err error)
	SellerProductIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	store          Storer
	productService productServicer
	eventEngine    eventengine.RegisterPublisher
}

func NewService(store Storer, productService productServicer, eventEngine eventengine.RegisterPublisher) *service {
	s := &service{
		store:          store,
		productService: productService,
		eventEngine:    eventEngine,
	}

	if s.eventEngine != nil {
		s.eventEngine.RegisterEvents(
			event.OrderPlacedEventName,
		)
	}

	return s
}

// placeOrder walks the items in input order: fetch, check stock, freeze the
// line at the current price, then decrement. The decrement is a single
// conditional write so stock never goes negative, but a failure on a later
// item leaves earlier items' stock already decremented and no order row
// persisted; there is no compensation step.
func (s *service) placeOrder(ctx context.Context, req *PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, servererrors.ErrOrderMustContainItems
	}

	var totalPrice float64
	orderItems := make([]OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		p, err := s.productService.GetProduct(ctx, item.Product)
		if err != nil {
			return nil, err
		}

		if p.Stock < item.Quantity {
			return nil, &servererrors.InsufficientStockError{
				ProductName: p.Name,
			}
		}

		totalPrice += p.Price * float64(item.Quantity)

		orderItems = append(orderItems, OrderItem{
			ProductID: p.ProductID,
			Quantity:  item.Quantity,
			Price:     p.Price,
		})

		decremented, err := s.productService.DecrementStock(
			ctx,
			p.ProductID,
			item.Quantity,
		)
		if err != nil {
			return nil, err
		}

		if !decremented {
			// lost the race against a concurrent order
			return nil, &servererrors.InsufficientStockError{
				ProductName: p.Name,
			}
		}
	}

	newOrder := &Order{
		UserID:        req.User,
		ShippingInfo:  req.ShippingInfo,
		PaymentMethod: req.PaymentMethod,
		CardNumber:    req.CardNumber,
		CardName:      req.CardName,
		Expiry:        req.Expiry,
		CVV:           req.CVV,
		Items:         orderItems,
		TotalPrice:    totalPrice,
		Status:        StatusProcessing,
	}

	if err := s.store.createOne(ctx, newOrder); err != nil {
		return nil, err
	}

	s.publishOrderPlaced(newOrder)

	return newOrder, nil
}

func (s *service) publishOrderPlaced(placedOrder *Order) {
	if s.eventEngine == nil {
		return
	}

	placedEvent := &event.OrderPlacedEvent{
		OrderID:       placedOrder.OrderID,
		ShippingEmail: placedOrder.ShippingInfo.Email,
		FirstName:     placedOrder.ShippingInfo.FirstName,
		TotalPrice:    placedOrder.TotalPrice,
		ItemCount:     len(placedOrder.Items),
	}

	err := s.eventEngine.Publish(
		&event.Event{
			Name:    placedEvent.GetEventName(),
			Payload: placedEvent,
		},
	)
	if err != nil {
		log.Println("failed to publish order placed event:", err)
	}
}

func (s *service) getMyOrders(ctx context.Context, userID uuid.UUID) ([]*OrderDTO, error) {
	orders, err := s.store.findByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.resolveOrders(ctx, orders)
}

// getAllOrders returns every order for an Admin, and only orders containing
// at least one of the seller's own products for a Seller.
func (s *service) getAllOrders(ctx context.Context, actor *middlewares.Actor) ([]*OrderDTO, error) {
	if actor.Role == auth.RoleAdmin {
		orders, err := s.store.findAll(ctx)
		if err != nil {
			return nil, err
		}

		return s.resolveOrders(ctx, orders)
	}

	sellerProductIDs, err := s.productService.SellerProductIDs(
		ctx,
		actor.UserID,
	)
	if err != nil {
		return nil, err
	}

	if len(sellerProductIDs) == 0 {
		return []*OrderDTO{}, nil
	}

	orders, err := s.store.findContainingProducts(ctx, sellerProductIDs)
	if err != nil {
		return nil, err
	}

	return s.resolveOrders(ctx, orders)
}

func (s *service) resolveOrders(ctx context.Context, orders []*Order) ([]*OrderDTO, error) {
	resolved := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		dto, err := s.resolveOrder(ctx, o)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, dto)
	}

	return resolved, nil
}

// resolveOrder maps a stored order to its listing shape with every line's
// product resolved to the full record.
func (s *service) resolveOrder(ctx context.Context, o *Order) (*OrderDTO, error) {
	dto := &OrderDTO{
		OrderID:       o.OrderID,
		UserID:        o.UserID,
		ShippingInfo:  o.ShippingInfo,
		PaymentMethod: o.PaymentMethod,
		CardNumber:    o.CardNumber,
		CardName:      o.CardName,
		Expiry:        o.Expiry,
		CVV:           o.CVV,
		TotalPrice:    o.TotalPrice,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		Items:         make([]OrderLineDTO, 0, len(o.Items)),
	}

	for _, item := range o.Items {
		p, err := s.productService.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, servererrors.ErrProductNotFound) {
				// deleted product; keep the frozen line, drop the reference
				p = nil
			} else {
				return nil, err
			}
		}

		dto.Items = append(dto.Items, OrderLineDTO{
			Product:  p,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return dto, nil
}

// updateStatus lets an Admin set any order's status. A Seller may only
// update an order in which every single line is one of their products.
func (s *service) updateStatus(ctx context.Context, actor *middlewares.Actor, orderID uuid.UUID, status string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, servererrors.ErrInvalidStatus
	}

	existing, err := s.store.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if actor.Role == auth.RoleSeller {
		sellerProductIDs, err := s.productService.SellerProductIDs(
			ctx,
			actor.UserID,
		)
		if err != nil {
			return nil, err
		}

		owned := make(map[uuid.UUID]struct{}, len(sellerProductIDs))
		for _, id := range sellerProductIDs {
			owned[id] = struct{}{}
		}

		for _, item := range existing.Items {
			if _, ok := owned[item.ProductID]; !ok {
				return nil, servererrors.ErrAccessDenied
			}
		}
	}

	if err := s.store.updateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	existing.Status = status

	return existing, nil
}
