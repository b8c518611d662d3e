package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrDuplicateEmail   = errors.New("email already registered")

	// ErrTxConflict marks a serialization failure (deadlock or lock wait
	// timeout) between concurrent sale transactions. Safe to retry.
	ErrTxConflict = errors.New("transaction conflict")
)

// ProductNotFoundError reports a line item referencing an unknown product.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError reports a failed stock check. Available is the
// exact stock level observed under the row lock at decision time.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// ValidationError reports a malformed request rejected before any
// store operation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
