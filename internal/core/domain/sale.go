package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLineItem records one {product, quantity} entry of a sale together
// with the unit price snapshotted at registration time. Later product
// price changes never touch a stored line item.
type SaleLineItem struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Sale is the aggregate root. It is built fully in memory, total
// included, and persisted together with its line items in one commit.
type Sale struct {
	ID        string          `json:"id"`
	Customer  Customer        `json:"customer"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []SaleLineItem  `json:"items"`
}

func NewSaleLineItem(productID, productName string, quantity int, unitPrice decimal.Decimal) SaleLineItem {
	return SaleLineItem{
		ID:          uuid.NewString(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// NewSale binds the line items to a fresh sale id and computes the total
// as the exact decimal sum of the item subtotals.
func NewSale(customer Customer, items []SaleLineItem) *Sale {
	saleID := uuid.NewString()
	total := decimal.Zero
	for i := range items {
		items[i].SaleID = saleID
		total = total.Add(items[i].Subtotal)
	}
	return &Sale{
		ID:        saleID,
		Customer:  customer,
		Total:     total,
		CreatedAt: time.Now().UTC(),
		Items:     items,
	}
}
