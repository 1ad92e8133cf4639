package order

import (
	"context"
	"errors"
	"testing"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/features/product"
	"github.com/menna-17/backend-craftora/internal/middlewares"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
)

type fakeOrderStore struct {
	created      []*Order
	orders       map[uuid.UUID]*Order
	findAllCalls int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (f *fakeOrderStore) createOne(ctx context.Context, newOrder *Order) error {
	newOrder.OrderID = uuid.New()
	f.created = append(f.created, newOrder)
	f.orders[newOrder.OrderID] = newOrder
	return nil
}

func (f *fakeOrderStore) findByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error) {
	var orders []*Order
	for _, o := range f.orders {
		if o.UserID != nil && *o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeOrderStore) findAll(ctx context.Context) ([]*Order, error) {
	f.findAllCalls++

	orders := make([]*Order, 0, len(f.orders))
	for _, o := range f.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (f *fakeOrderStore) findContainingProducts(ctx context.Context, productIDs []uuid.UUID) ([]*Order, error) {
	wanted := make(map[uuid.UUID]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}

	var orders []*Order
	for _, o := range f.orders {
		for _, item := range o.Items {
			if _, ok := wanted[item.ProductID]; ok {
				orders = append(orders, o)
				break
			}
		}
	}
	return orders, nil
}

func (f *fakeOrderStore) findByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, servererrors.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderStore) updateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return servererrors.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

type fakeProductService struct {
	products         map[uuid.UUID]*product.Product
	sellerProducts   map[uuid.UUID][]uuid.UUID
	decrementedItems []uuid.UUID
	failDecrementFor map[uuid.UUID]bool
}

func newFakeProductService() *fakeProductService {
	return &fakeProductService{
		products:         make(map[uuid.UUID]*product.Product),
		sellerProducts:   make(map[uuid.UUID][]uuid.UUID),
		failDecrementFor: make(map[uuid.UUID]bool),
	}
}

func (f *fakeProductService) addProduct(name string, price float64, stock int) uuid.UUID {
	id := uuid.New()
	f.products[id] = &product.Product{
		ProductID: id,
		Name:      name,
		Price:     price,
		Stock:     stock,
	}
	return id
}

func (f *fakeProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, servererrors.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductService) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	if f.failDecrementFor[productID] {
		return false, nil
	}

	p, ok := f.products[productID]
	if !ok || p.Stock < quantity {
		return false, nil
	}

	p.Stock -= quantity
	f.decrementedItems = append(f.decrementedItems, productID)
	return true, nil
}

func (f *fakeProductService) SellerProductIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error) {
	return f.sellerProducts[sellerID], nil
}

func Test_placeOrder(t *testing.T) {
	store := newFakeOrderStore()
	productService := newFakeProductService()
	svc := NewService(store, productService, nil)

	mugID := productService.addProduct("Clay Mug", 24.50, 5)
	vaseID := productService.addProduct("Glass Vase", 80.00, 2)

	placed, err := svc.placeOrder(context.Background(), &PlaceOrderRequest{
		Items: []PlaceOrderItem{
			{Product: mugID, Quantity: 2},
			{Product: vaseID, Quantity: 1},
		},
		ShippingInfo: ShippingInfo{
			FirstName: "Menna",
			Email:     "menna@example.com",
		},
		PaymentMethod: "cod",
	})
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	wantTotal := 2*24.50 + 80.00
	if placed.TotalPrice != wantTotal {
		t.Errorf("got total %.2f, want %.2f", placed.TotalPrice, wantTotal)
	}
	if placed.Status != StatusProcessing {
		t.Errorf("got status %q, want %q", placed.Status, StatusProcessing)
	}

	// line prices are frozen at order time
	if placed.Items[0].Price != 24.50 || placed.Items[1].Price != 80.00 {
		t.Errorf("expected frozen line prices, got %+v", placed.Items)
	}

	if got := productService.products[mugID].Stock; got != 3 {
		t.Errorf("got mug stock %d, want 3", got)
	}
	if got := productService.products[vaseID].Stock; got != 1 {
		t.Errorf("got vase stock %d, want 1", got)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(store.created))
	}
}

func Test_placeOrder_noItems(t *testing.T) {
	svc := NewService(newFakeOrderStore(), newFakeProductService(), nil)

	_, err := svc.placeOrder(context.Background(), &PlaceOrderRequest{})
	if !errors.Is(err, servererrors.ErrOrderMustContainItems) {
		t.Errorf("got %v, want ErrOrderMustContainItems", err)
	}
}

func Test_placeOrder_unknownProduct(t *testing.T) {
	svc := NewService(newFakeOrderStore(), newFakeProductService(), nil)

	_, err := svc.placeOrder(context.Background(), &PlaceOrderRequest{
		Items: []PlaceOrderItem{
			{Product: uuid.New(), Quantity: 1},
		},
	})
	if !errors.Is(err, servererrors.ErrProductNotFound) {
		t.Errorf("got %v, want ErrProductNotFound", err)
	}
}

// A later item failing the stock check aborts the order, but stock already
// taken for earlier items stays taken. That is the documented behavior of the
// placement walk, not an accident of this test.
func Test_placeOrder_midListInsufficientStock(t *testing.T) {
	store := newFakeOrderStore()
	productService := newFakeProductService()
	svc := NewService(store, productService, nil)

	mugID := productService.addProduct("Clay Mug", 24.50, 5)
	vaseID := productService.addProduct("Glass Vase", 80.00, 1)

	_, err := svc.placeOrder(context.Background(), &PlaceOrderRequest{
		Items: []PlaceOrderItem{
			{Product: mugID, Quantity: 2},
			{Product: vaseID, Quantity: 3}, // only 1 in stock
		},
	})

	var stockErr *servererrors.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	if stockErr.ProductName != "Glass Vase" {
		t.Errorf("got product %q in error, want %q", stockErr.ProductName, "Glass Vase")
	}

	if got := productService.products[mugID].Stock; got != 3 {
		t.Errorf("got mug stock %d, want 3 (earlier decrement is not compensated)", got)
	}
	if got := productService.products[vaseID].Stock; got != 1 {
		t.Errorf("got vase stock %d, want 1", got)
	}

	if len(store.created) != 0 {
		t.Errorf("expected no persisted order, got %d", len(store.created))
	}
}

func Test_placeOrder_lostDecrementRace(t *testing.T) {
	store := newFakeOrderStore()
	productService := newFakeProductService()
	svc := NewService(store, productService, nil)

	mugID := productService.addProduct("Clay Mug", 24.50, 5)
	productService.failDecrementFor[mugID] = true

	_, err := svc.placeOrder(context.Background(), &PlaceOrderRequest{
		Items: []PlaceOrderItem{
			{Product: mugID, Quantity: 2},
		},
	})

	var stockErr *servererrors.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	if len(store.created) != 0 {
		t.Errorf("expected no persisted order, got %d", len(store.created))
	}
}

func placeTestOrder(t *testing.T, svc *service, productService *fakeProductService, productIDs ...uuid.UUID) *Order {
	t.Helper()

	items := make([]PlaceOrderItem, 0, len(productIDs))
	for _, id := range productIDs {
		items = append(items, PlaceOrderItem{Product: id, Quantity: 1})
	}

	placed, err := svc.placeOrder(context.Background(), &PlaceOrderRequest{
		Items: items,
	})
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	return placed
}

func Test_updateStatus(t *testing.T) {
	store := newFakeOrderStore()
	productService := newFakeProductService()
	svc := NewService(store, productService, nil)

	sellerID := uuid.New()
	mugID := productService.addProduct("Clay Mug", 24.50, 5)
	vaseID := productService.addProduct("Glass Vase", 80.00, 5)
	productService.sellerProducts[sellerID] = []uuid.UUID{mugID}

	ownOrder := placeTestOrder(t, svc, productService, mugID)
	mixedOrder := placeTestOrder(t, svc, productService, mugID, vaseID)

	seller := &middlewares.Actor{UserID: sellerID, Role: auth.RoleSeller}
	admin := &middlewares.Actor{UserID: uuid.New(), Role: auth.RoleAdmin}
	ctx := context.Background()

	_, err := svc.updateStatus(ctx, admin, ownOrder.OrderID, "returned")
	if !errors.Is(err, servererrors.ErrInvalidStatus) {
		t.Errorf("got %v, want ErrInvalidStatus", err)
	}

	_, err = svc.updateStatus(ctx, admin, uuid.New(), StatusShipped)
	if !errors.Is(err, servererrors.ErrOrderNotFound) {
		t.Errorf("got %v, want ErrOrderNotFound", err)
	}

	// a seller may update an order made only of their products
	updated, err := svc.updateStatus(ctx, seller, ownOrder.OrderID, StatusShipped)
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	if updated.Status != StatusShipped {
		t.Errorf("got status %q, want %q", updated.Status, StatusShipped)
	}

	// but not one containing someone else's product
	_, err = svc.updateStatus(ctx, seller, mixedOrder.OrderID, StatusShipped)
	if !errors.Is(err, servererrors.ErrAccessDenied) {
		t.Errorf("got %v, want ErrAccessDenied", err)
	}

	// an admin may update any order
	updated, err = svc.updateStatus(ctx, admin, mixedOrder.OrderID, StatusCancelled)
	if err != nil {
		t.Fatalf("failed to update status as admin: %v", err)
	}
	if updated.Status != StatusCancelled {
		t.Errorf("got status %q, want %q", updated.Status, StatusCancelled)
	}
}

func Test_getAllOrders(t *testing.T) {
	store := newFakeOrderStore()
	productService := newFakeProductService()
	svc := NewService(store, productService, nil)

	sellerID := uuid.New()
	mugID := productService.addProduct("Clay Mug", 24.50, 10)
	vaseID := productService.addProduct("Glass Vase", 80.00, 10)
	productService.sellerProducts[sellerID] = []uuid.UUID{mugID}

	placeTestOrder(t, svc, productService, mugID)
	placeTestOrder(t, svc, productService, vaseID)
	placeTestOrder(t, svc, productService, mugID, vaseID)

	ctx := context.Background()

	adminOrders, err := svc.getAllOrders(ctx, &middlewares.Actor{
		UserID: uuid.New(),
		Role:   auth.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("failed to list orders as admin: %v", err)
	}
	if len(adminOrders) != 3 {
		t.Errorf("got %d orders for admin, want 3", len(adminOrders))
	}
	if store.findAllCalls != 1 {
		t.Errorf("expected the admin path to hit findAll once, got %d", store.findAllCalls)
	}

	// listings resolve line products to full records
	for _, o := range adminOrders {
		for _, line := range o.Items {
			if line.Product == nil {
				t.Errorf("expected resolved product on order %s", o.OrderID)
			}
		}
	}

	// a seller only sees orders containing at least one of their products
	sellerOrders, err := svc.getAllOrders(ctx, &middlewares.Actor{
		UserID: sellerID,
		Role:   auth.RoleSeller,
	})
	if err != nil {
		t.Fatalf("failed to list orders as seller: %v", err)
	}
	if len(sellerOrders) != 2 {
		t.Errorf("got %d orders for seller, want 2", len(sellerOrders))
	}

	// a seller with no products sees an empty list, not an error
	emptyOrders, err := svc.getAllOrders(ctx, &middlewares.Actor{
		UserID: uuid.New(),
		Role:   auth.RoleSeller,
	})
	if err != nil {
		t.Fatalf("failed to list orders for seller without products: %v", err)
	}
	if len(emptyOrders) != 0 {
		t.Errorf("got %d orders, want 0", len(emptyOrders))
	}
}

func Test_getMyOrders_keepsLineForDeletedProduct(t *testing.T) {
	store := newFakeOrderStore()
	productService := newFakeProductService()
	svc := NewService(store, productService, nil)

	userID := uuid.New()
	mugID := productService.addProduct("Clay Mug", 24.50, 5)

	placed, err := svc.placeOrder(context.Background(), &PlaceOrderRequest{
		Items: []PlaceOrderItem{
			{Product: mugID, Quantity: 2},
		},
		User: &userID,
	})
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	// product is deleted out from under the frozen line
	delete(productService.products, mugID)

	orders, err := svc.getMyOrders(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to list orders: %v", err)
	}

	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	if orders[0].OrderID != placed.OrderID {
		t.Errorf("got order %s, want %s", orders[0].OrderID, placed.OrderID)
	}

	line := orders[0].Items[0]
	if line.Product != nil {
		t.Errorf("expected nil product on the dangling line, got %+v", line.Product)
	}
	if line.Quantity != 2 || line.Price != 24.50 {
		t.Errorf("frozen line must survive the deletion, got %+v", line)
	}
}
