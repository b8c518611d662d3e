package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/commercekit/sales-service/internal/core/domain"
	"github.com/commercekit/sales-service/internal/obs"
	"github.com/commercekit/sales-service/internal/port"
)

var ErrDuplicateRequest = errors.New("duplicate request")

// RegisterSaleRequest is the validated input of a sale registration.
// RequestID is optional; when present it makes the call idempotent.
type RegisterSaleRequest struct {
	RequestID  string
	CustomerID string
	Items      []port.SaleItem
}

type SaleService struct {
	sales      port.SaleRepository
	cache      port.CacheRepository
	maxRetries int
}

func NewSaleService(sales port.SaleRepository, cache port.CacheRepository, maxRetries int) *SaleService {
	return &SaleService{
		sales:      sales,
		cache:      cache,
		maxRetries: maxRetries,
	}
}

// RegisterSale runs the whole registration: idempotency claim, one
// all-or-nothing transaction against the store, bounded retry on
// serialization conflicts. Business failures (unknown product or
// customer, insufficient stock) are terminal and never retried.
func (s *SaleService) RegisterSale(ctx context.Context, req RegisterSaleRequest) (*domain.Sale, error) {
	if err := validateRegisterSale(req); err != nil {
		obs.SaleFailures.WithLabelValues("validation").Inc()
		return nil, err
	}

	idempotencyKey := ""
	if req.RequestID != "" {
		idempotencyKey = "sale:" + req.RequestID

		ok, err := s.cache.SetIdempotency(ctx, idempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			obs.SaleFailures.WithLabelValues("duplicate").Inc()
			return nil, ErrDuplicateRequest
		}
	}

	var sale *domain.Sale
	var err error
	for attempt := 0; ; attempt++ {
		sale, err = s.sales.CreateSale(ctx, req.CustomerID, req.Items)
		if !errors.Is(err, domain.ErrTxConflict) || attempt >= s.maxRetries {
			break
		}
		obs.Logger.Warn("sale transaction conflict, retrying",
			"customer_id", req.CustomerID,
			"attempt", attempt+1,
		)
	}
	if err != nil {
		s.releaseClaim(ctx, idempotencyKey)
		obs.SaleFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	obs.SalesRegistered.Inc()
	obs.Logger.Info("sale registered",
		"sale_id", sale.ID,
		"customer_id", sale.Customer.ID,
		"items", len(sale.Items),
		"total", sale.Total.String(),
	)
	return sale, nil
}

// ListSales returns all sales with nested customer and line-item detail.
func (s *SaleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.sales.ListSales(ctx)
}

// GetSale returns one sale. Fails with domain.ErrSaleNotFound if the id
// is unknown.
func (s *SaleService) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	if id == "" {
		return nil, &domain.ValidationError{Reason: "sale id is required"}
	}
	return s.sales.GetSale(ctx, id)
}

func (s *SaleService) releaseClaim(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.cache.ReleaseIdempotency(ctx, key); err != nil {
		obs.Logger.Error("failed to release idempotency key", "key", key, "error", err)
	}
}

func validateRegisterSale(req RegisterSaleRequest) error {
	if req.CustomerID == "" {
		return &domain.ValidationError{Reason: "customer_id is required"}
	}
	if len(req.Items) == 0 {
		return &domain.ValidationError{Reason: "items must not be empty"}
	}
	for i, item := range req.Items {
		if item.ProductID == "" {
			return &domain.ValidationError{Reason: fmt.Sprintf("items[%d].product_id is required", i)}
		}
		if item.Quantity <= 0 {
			return &domain.ValidationError{Reason: fmt.Sprintf("items[%d].quantity must be > 0", i)}
		}
	}
	return nil
}

func failureReason(err error) string {
	var notFound *domain.ProductNotFoundError
	var stock *domain.InsufficientStockError
	switch {
	case errors.As(err, &notFound):
		return "product_not_found"
	case errors.As(err, &stock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, domain.ErrTxConflict):
		return "tx_conflict"
	default:
		return "persistence"
	}
}
