package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/commercekit/sales-service/internal/core/domain"
	"github.com/commercekit/sales-service/internal/port"
)

// CatalogService handles the plain customer and product operations:
// validation, entity construction, repository pass-through.
type CatalogService struct {
	catalog port.CatalogRepository
}

func NewCatalogService(catalog port.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) CreateCustomer(ctx context.Context, name, email, taxID string) (*domain.Customer, error) {
	if name == "" {
		return nil, &domain.ValidationError{Reason: "name is required"}
	}
	if email == "" {
		return nil, &domain.ValidationError{Reason: "email is required"}
	}
	customer := domain.NewCustomer(name, email, taxID)
	if err := s.catalog.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CatalogService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.catalog.ListCustomers(ctx)
}

func (s *CatalogService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	if id == "" {
		return nil, &domain.ValidationError{Reason: "customer id is required"}
	}
	return s.catalog.FindCustomer(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal, stock int) (*domain.Product, error) {
	if name == "" {
		return nil, &domain.ValidationError{Reason: "name is required"}
	}
	if price.IsNegative() {
		return nil, &domain.ValidationError{Reason: "price must be >= 0"}
	}
	if stock < 0 {
		return nil, &domain.ValidationError{Reason: "stock must be >= 0"}
	}
	product := domain.NewProduct(name, description, price, stock)
	if err := s.catalog.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, &domain.ValidationError{Reason: "product id is required"}
	}
	return s.catalog.FindProduct(ctx, id)
}
