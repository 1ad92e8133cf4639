package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// findByUser returns the user's cart with its items, or an empty cart when
// none exists yet.
func (s *Store) findByUser(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	cart := &Cart{
		UserID: userID,
		Items:  []CartItem{},
	}

	query := `SELECT cart_id, created_at, updated_at FROM carts WHERE user_id = $1`

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&cart.CartID,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cart, nil
		}

		return nil, fmt.Errorf(
			"failed to scan cart from cart store: %w",
			err,
		)
	}

	itemsQuery := `SELECT product_id, quantity FROM cart_items WHERE cart_id = $1`

	rows, err := s.db.QueryContext(ctx, itemsQuery, cart.CartID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get cart items from cart store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		var item CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf(
				"failed to scan cart item from cart store: %w",
				err,
			)
		}
		cart.Items = append(cart.Items, item)
	}

	return cart, rows.Err()
}

// upsertItem creates the cart row if needed, then merges quantity into the
// line for productID. The merge is a single conflict-update so concurrent
// adds for the same product sum instead of clobbering each other.
func (s *Store) upsertItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*Cart, error) {
	tx, err := s.db.BeginTx(
		ctx,
		nil,
	)
	if err != nil {
		return nil, err
	}

	cartQuery := `INSERT INTO carts(user_id) VALUES($1) ON CONFLICT (user_id) DO UPDATE SET updated_at = now() RETURNING cart_id`

	var cartID uuid.UUID
	err = tx.QueryRowContext(
		ctx,
		cartQuery,
		userID,
	).Scan(&cartID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf(
			"failed to upsert cart in cart store: %w",
			err,
		)
	}

	itemQuery := `INSERT INTO cart_items(cart_id, product_id, quantity) VALUES($1, $2, $3) ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`

	_, err = tx.ExecContext(
		ctx,
		itemQuery,
		cartID,
		productID,
		quantity,
	)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf(
			"failed to upsert cart item in cart store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.findByUser(ctx, userID)
}
