package servererrors

import "fmt"

// InsufficientStockError names the product whose stock could not cover the
// requested quantity, matching the message the storefront surfaces to users.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s has insufficient stock", e.ProductName)
}
