package port

import (
	"context"

	"github.com/commercekit/sales-service/internal/core/domain"
)

type CatalogRepository interface {
	// CreateCustomer persists a new customer. Returns
	// domain.ErrDuplicateEmail when the email is already registered.
	CreateCustomer(ctx context.Context, customer *domain.Customer) error

	// ListCustomers returns all customers ordered by creation time.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// FindCustomer retrieves a customer by id.
	FindCustomer(ctx context.Context, id string) (*domain.Customer, error)

	// CreateProduct persists a new product with its initial stock.
	CreateProduct(ctx context.Context, product *domain.Product) error

	// ListProducts returns all products ordered by creation time.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// FindProduct retrieves a product by id.
	FindProduct(ctx context.Context, id string) (*domain.Product, error)
}
