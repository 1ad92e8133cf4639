package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// createOne persists the order snapshot and its frozen lines in one
// transaction. Stock decrements have already happened by the time this runs
// and are deliberately not part of it.
func (s *Store) createOne(ctx context.Context, newOrder *Order) error {
	shippingJSON, err := json.Marshal(newOrder.ShippingInfo)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal shipping info in order store: %w",
			err,
		)
	}

	tx, err := s.db.BeginTx(
		ctx,
		nil,
	)
	if err != nil {
		return err
	}

	orderQuery := `INSERT INTO orders(user_id, shipping_info, payment_method, card_number, card_name, expiry, cvv, total_price, status) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING order_id, created_at`

	err = tx.QueryRowContext(
		ctx,
		orderQuery,
		newOrder.UserID,
		shippingJSON,
		newOrder.PaymentMethod,
		newOrder.CardNumber,
		newOrder.CardName,
		newOrder.Expiry,
		newOrder.CVV,
		newOrder.TotalPrice,
		newOrder.Status,
	).Scan(
		&newOrder.OrderID,
		&newOrder.CreatedAt,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to insert new order in order store: %w",
			err,
		)
	}

	itemQuery := `INSERT INTO order_items(order_id, product_id, quantity, price) VALUES($1, $2, $3, $4)`

	for _, item := range newOrder.Items {
		_, err = tx.ExecContext(
			ctx,
			itemQuery,
			newOrder.OrderID,
			item.ProductID,
			item.Quantity,
			item.Price,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf(
				"failed to insert order item in order store: %w",
				err,
			)
		}
	}

	return tx.Commit()
}

func (s *Store) findByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error) {
	query := `SELECT order_id, user_id, shipping_info, payment_method, card_number, card_name, expiry, cvv, total_price, status, created_at FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	return s.queryOrders(ctx, query, userID)
}

func (s *Store) findAll(ctx context.Context) ([]*Order, error) {
	query := `SELECT order_id, user_id, shipping_info, payment_method, card_number, card_name, expiry, cvv, total_price, status, created_at FROM orders ORDER BY created_at DESC`

	return s.queryOrders(ctx, query)
}

// findContainingProducts returns orders with at least one line referencing
// any of productIDs, newest first.
func (s *Store) findContainingProducts(ctx context.Context, productIDs []uuid.UUID) ([]*Order, error) {
	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.String())
	}

	query := `SELECT DISTINCT o.order_id, o.user_id, o.shipping_info, o.payment_method, o.card_number, o.card_name, o.expiry, o.cvv, o.total_price, o.status, o.created_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.order_id
		WHERE oi.product_id = ANY($1)
		ORDER BY o.created_at DESC`

	return s.queryOrders(ctx, query, pq.Array(ids))
}

func (s *Store) findByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	query := `SELECT order_id, user_id, shipping_info, payment_method, card_number, card_name, expiry, cvv, total_price, status, created_at FROM orders WHERE order_id = $1`

	foundOrder := new(Order)
	err := scanRowIntoOrder(
		s.db.QueryRowContext(ctx, query, orderID),
		foundOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrOrderNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan order from order store: %w",
			err,
		)
	}

	if err := s.loadItems(ctx, foundOrder); err != nil {
		return nil, err
	}

	return foundOrder, nil
}

func (s *Store) updateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	query := `UPDATE orders SET status = $2 WHERE order_id = $1`

	result, err := s.db.ExecContext(
		ctx,
		query,
		orderID,
		status,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to update order status in order store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return servererrors.ErrOrderNotFound
	}

	return nil
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) (orders []*Order, err error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get orders from order store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		foundOrder := new(Order)
		if err := scanRowIntoOrder(rows, foundOrder); err != nil {
			return nil, fmt.Errorf(
				"failed to scan order from order store: %w",
				err,
			)
		}
		orders = append(orders, foundOrder)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, foundOrder := range orders {
		if err := s.loadItems(ctx, foundOrder); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (s *Store) loadItems(ctx context.Context, foundOrder *Order) error {
	query := `SELECT product_id, quantity, price FROM order_items WHERE order_id = $1`

	rows, err := s.db.QueryContext(ctx, query, foundOrder.OrderID)
	if err != nil {
		return fmt.Errorf(
			"failed to get order items from order store: %w",
			err,
		)
	}
	defer rows.Close()

	foundOrder.Items = []OrderItem{}
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf(
				"failed to scan order item from order store: %w",
				err,
			)
		}
		foundOrder.Items = append(foundOrder.Items, item)
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRowIntoOrder(row rowScanner, foundOrder *Order) error {
	var userID uuid.NullUUID
	var shippingJSON []byte

	err := row.Scan(
		&foundOrder.OrderID,
		&userID,
		&shippingJSON,
		&foundOrder.PaymentMethod,
		&foundOrder.CardNumber,
		&foundOrder.CardName,
		&foundOrder.Expiry,
		&foundOrder.CVV,
		&foundOrder.TotalPrice,
		&foundOrder.Status,
		&foundOrder.CreatedAt,
	)
	if err != nil {
		return err
	}

	if userID.Valid {
		foundOrder.UserID = &userID.UUID
	}

	if len(shippingJSON) > 0 {
		if err := json.Unmarshal(shippingJSON, &foundOrder.ShippingInfo); err != nil {
			return err
		}
	}

	return nil
}
