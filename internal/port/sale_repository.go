package port

import (
	"context"

	"github.com/commercekit/sales-service/internal/core/domain"
)

// SaleItem is one requested {product, quantity} entry, in caller order.
type SaleItem struct {
	ProductID string
	Quantity  int
}

type SaleRepository interface {
	// CreateSale registers a sale in a single all-or-nothing transaction:
	// it validates the customer, locks each product row in caller order,
	// checks and decrements stock, snapshots unit prices and persists the
	// sale with all its line items. On any failure nothing is written.
	// Returns domain.ErrTxConflict on a retriable serialization failure.
	CreateSale(ctx context.Context, customerID string, items []SaleItem) (*domain.Sale, error)

	// GetSale returns one sale with nested customer and line-item detail.
	GetSale(ctx context.Context, id string) (*domain.Sale, error)

	// ListSales returns all sales with nested detail, newest first.
	ListSales(ctx context.Context) ([]domain.Sale, error)
}
