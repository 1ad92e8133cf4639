package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
)

const productColumns = `product_id, seller_id, name, description, price, category, stock, image, extra, created_at, updated_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	extraJSON, err := marshalExtra(newProduct.Extra)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO products(seller_id, name, description, price, category, stock, image, extra) VALUES($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + productColumns

	product := new(Product)
	err = scanRowIntoProduct(
		s.db.QueryRowContext(
			ctx,
			query,
			newProduct.SellerID,
			newProduct.Name,
			newProduct.Description,
			newProduct.Price,
			newProduct.Category,
			newProduct.Stock,
			newProduct.Image,
			extraJSON,
		),
		product,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new product in product store: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) findAll(ctx context.Context, queryItems *GetAllProductsRequestQuery) (products []*Product, count int, err error) {
	query, countQuery, queryParams := generateQueryAndParams(
		queryItems,
	)

	err = s.db.QueryRowContext(
		ctx,
		countQuery,
		queryParams[:len(queryParams)-2]..., // exclude limit and offset
	).Scan(
		&count,
	)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get all products count from product store: %w",
			err,
		)
	}

	rows, err := s.db.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get all products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		product := new(Product)
		if err := scanRowsIntoProduct(rows, product); err != nil {
			return nil, 0, fmt.Errorf(
				"failed to scan product from product store: %w",
				err,
			)
		}
		products = append(products, product)
	}

	return products, count, rows.Err()
}

func (s *Store) findByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	product := new(Product)
	err := scanRowIntoProduct(
		s.db.QueryRowContext(ctx, query, productID),
		product,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrProductNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) findBySeller(ctx context.Context, sellerID uuid.UUID) (products []*Product, err error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get seller products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		product := new(Product)
		if err := scanRowsIntoProduct(rows, product); err != nil {
			return nil, fmt.Errorf(
				"failed to scan product from product store: %w",
				err,
			)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// updateOne applies the partial update and returns nil, nil when no row
// matched the predicate (absent product, or a seller touching a product that
// is not theirs).
func (s *Store) updateOne(ctx context.Context, update *UpdateProductRequest) (*Product, error) {
	setClauses := []string{}
	queryParams := []any{update.ProductID}

	addSet := func(column string, value any) {
		setClauses = append(
			setClauses,
			fmt.Sprintf("%s = $%d", column, len(queryParams)+1),
		)
		queryParams = append(queryParams, value)
	}

	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.Price != nil {
		addSet("price", *update.Price)
	}
	if update.Category != nil {
		addSet("category", *update.Category)
	}
	if update.Stock != nil {
		addSet("stock", *update.Stock)
	}
	if update.Image != nil {
		// an absent image keeps the stored one
		addSet("image", *update.Image)
	}

	if len(update.Extra) > 0 {
		extraJSON, err := marshalExtra(update.Extra)
		if err != nil {
			return nil, err
		}

		setClauses = append(
			setClauses,
			fmt.Sprintf("extra = extra || $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, extraJSON)
	}

	setClauses = append(setClauses, "updated_at = now()")

	whereClause := "product_id = $1"
	if update.ActorRole != auth.RoleAdmin {
		whereClause += fmt.Sprintf(
			" AND seller_id = $%d",
			len(queryParams)+1,
		)
		queryParams = append(queryParams, update.ActorID)
	}

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE %s RETURNING %s`,
		strings.Join(setClauses, ", "),
		whereClause,
		productColumns,
	)

	product := new(Product)
	err := scanRowIntoProduct(
		s.db.QueryRowContext(ctx, query, queryParams...),
		product,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"failed to update product in product store: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) deleteOne(ctx context.Context, productID uuid.UUID) error {
	query := `DELETE FROM products WHERE product_id = $1`

	_, err := s.db.ExecContext(ctx, query, productID)
	if err != nil {
		return fmt.Errorf(
			"failed to delete product in product store: %w",
			err,
		)
	}

	return nil
}

// decrementStock is the single atomic safety net for order placement: the
// decrement only happens when current stock covers the quantity, as one
// conditional write.
func (s *Store) decrementStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	query := `UPDATE products SET stock = stock - $2, updated_at = now() WHERE product_id = $1 AND stock >= $2`

	result, err := s.db.ExecContext(
		ctx,
		query,
		productID,
		quantity,
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to decrement stock in product store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRowIntoProduct(row rowScanner, product *Product) error {
	var sellerID uuid.NullUUID
	var extraJSON []byte

	err := row.Scan(
		&product.ProductID,
		&sellerID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.Stock,
		&product.Image,
		&extraJSON,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if sellerID.Valid {
		product.SellerID = &sellerID.UUID
	}

	if len(extraJSON) > 0 {
		if err := json.Unmarshal(extraJSON, &product.Extra); err != nil {
			return err
		}
		if len(product.Extra) == 0 {
			product.Extra = nil
		}
	}

	return nil
}

func scanRowsIntoProduct(rows *sql.Rows, product *Product) error {
	return scanRowIntoProduct(rows, product)
}

func marshalExtra(extra map[string]any) ([]byte, error) {
	if len(extra) == 0 {
		return []byte(`{}`), nil
	}

	extraJSON, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to marshal product extra fields: %w",
			err,
		)
	}

	return extraJSON, nil
}

func generateQueryAndParams(queryItems *GetAllProductsRequestQuery) (string, string, []any) {
	defaultQuery := `SELECT ` + productColumns + ` FROM products`
	defaultCountQuery := `SELECT COUNT(*) FROM products`

	whereClauses := []string{}
	queryParams := []any{}

	if queryItems.FilterOpts.Search != "" {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"name ILIKE $%d",
				len(queryParams)+1,
			),
		)

		queryParams = append(
			queryParams,
			fmt.Sprintf(
				"%%%s%%",
				queryItems.FilterOpts.Search,
			),
		)
	}

	if queryItems.FilterOpts.Category != "" {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"category = $%d",
				len(queryParams)+1,
			),
		)

		queryParams = append(queryParams, queryItems.FilterOpts.Category)
	}

	if queryItems.FilterOpts.MinPrice > 0.00 {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"price >= $%d",
				len(queryParams)+1,
			),
		)
		queryParams = append(queryParams, queryItems.FilterOpts.MinPrice)
	}

	if queryItems.FilterOpts.MaxPrice > 0.00 {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf("price <= $%d", len(queryParams)+1),
		)

		queryParams = append(queryParams, queryItems.FilterOpts.MaxPrice)
	}

	// --- Construct queries ---
	if len(whereClauses) > 0 {
		whereStr := strings.Join(whereClauses, " AND ")

		defaultQuery += fmt.Sprintf(
			" WHERE %s",
			whereStr,
		)

		defaultCountQuery += fmt.Sprintf(
			" WHERE %s",
			whereStr,
		)
	}

	defaultQuery += " ORDER BY created_at DESC"

	// --- Pagination LIMIT and OFFSET ---
	defaultQuery += fmt.Sprintf(
		" LIMIT $%d OFFSET $%d",
		len(queryParams)+1,
		len(queryParams)+2,
	)
	queryParams = append(
		queryParams,
		queryItems.PageOpts.Limit,
		(queryItems.PageOpts.Page-1)*queryItems.PageOpts.Limit,
	)

	return defaultQuery, defaultCountQuery, queryParams
}
