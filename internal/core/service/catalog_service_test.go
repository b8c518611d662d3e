package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/commercekit/sales-service/internal/core/domain"
)

// fakeCatalog implements port.CatalogRepository with function fields so
// each test overrides only what it needs.
type fakeCatalog struct {
	CreateCustomerFn func(ctx context.Context, c *domain.Customer) error
	ListCustomersFn  func(ctx context.Context) ([]domain.Customer, error)
	FindCustomerFn   func(ctx context.Context, id string) (*domain.Customer, error)
	CreateProductFn  func(ctx context.Context, p *domain.Product) error
	ListProductsFn   func(ctx context.Context) ([]domain.Product, error)
	FindProductFn    func(ctx context.Context, id string) (*domain.Product, error)
}

func (f *fakeCatalog) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	return f.CreateCustomerFn(ctx, c)
}
func (f *fakeCatalog) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return f.ListCustomersFn(ctx)
}
func (f *fakeCatalog) FindCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return f.FindCustomerFn(ctx, id)
}
func (f *fakeCatalog) CreateProduct(ctx context.Context, p *domain.Product) error {
	return f.CreateProductFn(ctx, p)
}
func (f *fakeCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.ListProductsFn(ctx)
}
func (f *fakeCatalog) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	return f.FindProductFn(ctx, id)
}

func TestCreateCustomer_Validation(t *testing.T) {
	svc := NewCatalogService(&fakeCatalog{})

	var invalid *domain.ValidationError
	if _, err := svc.CreateCustomer(context.Background(), "", "a@b.com", ""); !errors.As(err, &invalid) {
		t.Errorf("expected ValidationError for empty name, got: %v", err)
	}
	if _, err := svc.CreateCustomer(context.Background(), "alice", "", ""); !errors.As(err, &invalid) {
		t.Errorf("expected ValidationError for empty email, got: %v", err)
	}
}

func TestCreateCustomer_Forwarding(t *testing.T) {
	var stored *domain.Customer
	svc := NewCatalogService(&fakeCatalog{
		CreateCustomerFn: func(ctx context.Context, c *domain.Customer) error {
			stored = c
			return nil
		},
	})

	customer, err := svc.CreateCustomer(context.Background(), "alice", "alice@example.com", "TAX-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.ID == "" {
		t.Error("expected generated customer id")
	}
	if stored == nil || stored.Email != "alice@example.com" {
		t.Errorf("customer not forwarded to repository: %+v", stored)
	}
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	svc := NewCatalogService(&fakeCatalog{
		CreateCustomerFn: func(ctx context.Context, c *domain.Customer) error {
			return domain.ErrDuplicateEmail
		},
	})

	_, err := svc.CreateCustomer(context.Background(), "alice", "alice@example.com", "")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got: %v", err)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewCatalogService(&fakeCatalog{})

	var invalid *domain.ValidationError
	if _, err := svc.CreateProduct(context.Background(), "", "", decimal.NewFromInt(1), 1); !errors.As(err, &invalid) {
		t.Errorf("expected ValidationError for empty name, got: %v", err)
	}
	if _, err := svc.CreateProduct(context.Background(), "coffee", "", decimal.NewFromInt(-1), 1); !errors.As(err, &invalid) {
		t.Errorf("expected ValidationError for negative price, got: %v", err)
	}
	if _, err := svc.CreateProduct(context.Background(), "coffee", "", decimal.NewFromInt(1), -1); !errors.As(err, &invalid) {
		t.Errorf("expected ValidationError for negative stock, got: %v", err)
	}
}

func TestCreateProduct_Forwarding(t *testing.T) {
	var stored *domain.Product
	svc := NewCatalogService(&fakeCatalog{
		CreateProductFn: func(ctx context.Context, p *domain.Product) error {
			stored = p
			return nil
		},
	})

	price := decimal.RequireFromString("12.50")
	product, err := svc.CreateProduct(context.Background(), "coffee", "whole beans", price, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID == "" {
		t.Error("expected generated product id")
	}
	if stored == nil || !stored.Price.Equal(price) || stored.Stock != 30 {
		t.Errorf("product not forwarded to repository: %+v", stored)
	}
}

func TestGetCustomer(t *testing.T) {
	svc := NewCatalogService(&fakeCatalog{
		FindCustomerFn: func(ctx context.Context, id string) (*domain.Customer, error) {
			if id != "c1" {
				return nil, domain.ErrCustomerNotFound
			}
			return &domain.Customer{ID: "c1", Name: "alice"}, nil
		},
	})

	customer, err := svc.GetCustomer(context.Background(), "c1")
	if err != nil || customer.Name != "alice" {
		t.Fatalf("unexpected result: %+v, %v", customer, err)
	}

	if _, err := svc.GetCustomer(context.Background(), "nobody"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got: %v", err)
	}

	var invalid *domain.ValidationError
	if _, err := svc.GetCustomer(context.Background(), ""); !errors.As(err, &invalid) {
		t.Errorf("expected ValidationError for empty id, got: %v", err)
	}
}

func TestGetProduct_EmptyID(t *testing.T) {
	svc := NewCatalogService(&fakeCatalog{})

	var invalid *domain.ValidationError
	if _, err := svc.GetProduct(context.Background(), ""); !errors.As(err, &invalid) {
		t.Errorf("expected ValidationError, got: %v", err)
	}
}
