package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/commercekit/sales-service/internal/core/domain"
	"github.com/commercekit/sales-service/internal/port"
)

// MySQL error numbers that need dedicated handling.
const (
	mysqlDeadlock        = 1213
	mysqlLockWaitTimeout = 1205
	mysqlDuplicateEntry  = 1062
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// CreateSale registers a sale in one transaction. Items are processed in
// caller order: the first failing item determines the reported error.
// Each product row is locked before the stock check, so the decrement is
// atomic with respect to concurrent sales and the available quantity in
// an InsufficientStockError is exact.
func (m *MySQLAdapter) CreateSale(ctx context.Context, customerID string, items []port.SaleItem) (*domain.Sale, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var customer domain.Customer
	err = tx.QueryRowContext(ctx, `
		SELECT id, name, email, tax_id, created_at
		FROM customers WHERE id = ?`, customerID,
	).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.TaxID, &customer.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, storeErr("query customer", err)
	}

	now := time.Now().UTC()
	lineItems := make([]domain.SaleLineItem, 0, len(items))
	for _, item := range items {
		var (
			name  string
			price decimal.Decimal
			stock int
		)
		err = tx.QueryRowContext(ctx, `
			SELECT name, price, stock
			FROM products WHERE id = ? FOR UPDATE`, item.ProductID,
		).Scan(&name, &price, &stock)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
		}
		if err != nil {
			return nil, storeErr("query product", err)
		}

		if stock < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: name,
				Requested:   item.Quantity,
				Available:   stock,
			}
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - ?, updated_at = ?
			WHERE id = ? AND stock >= ?`,
			item.Quantity, now, item.ProductID, item.Quantity,
		)
		if err != nil {
			return nil, storeErr("update stock", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			// row is locked, zero rows means a lost race with another writer
			return nil, domain.ErrTxConflict
		}

		lineItems = append(lineItems, domain.NewSaleLineItem(item.ProductID, name, item.Quantity, price))
	}

	sale := domain.NewSale(customer, lineItems)
	sale.CreatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, customer_id, total, created_at)
		VALUES (?, ?, ?, ?)`,
		sale.ID, customer.ID, sale.Total, sale.CreatedAt,
	)
	if err != nil {
		return nil, storeErr("insert sale", err)
	}

	for i, li := range sale.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, line_no, quantity, unit_price, subtotal)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			li.ID, li.SaleID, li.ProductID, i, li.Quantity, li.UnitPrice, li.Subtotal,
		)
		if err != nil {
			return nil, storeErr("insert sale item", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storeErr("commit tx", err)
	}
	return sale, nil
}

func (m *MySQLAdapter) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	var sale domain.Sale
	err := m.db.QueryRowContext(ctx, `
		SELECT s.id, s.total, s.created_at,
		       c.id, c.name, c.email, c.tax_id, c.created_at
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.id = ?`, id,
	).Scan(
		&sale.ID, &sale.Total, &sale.CreatedAt,
		&sale.Customer.ID, &sale.Customer.Name, &sale.Customer.Email,
		&sale.Customer.TaxID, &sale.Customer.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query sale: %w", err)
	}

	sale.Items, err = m.loadItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (m *MySQLAdapter) ListSales(ctx context.Context) ([]domain.Sale, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT s.id, s.total, s.created_at,
		       c.id, c.name, c.email, c.tax_id, c.created_at
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(
			&sale.ID, &sale.Total, &sale.CreatedAt,
			&sale.Customer.ID, &sale.Customer.Name, &sale.Customer.Email,
			&sale.Customer.TaxID, &sale.Customer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	for i := range sales {
		sales[i].Items, err = m.loadItems(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return sales, nil
}

func (m *MySQLAdapter) loadItems(ctx context.Context, saleID string) ([]domain.SaleLineItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT si.id, si.sale_id, si.product_id, p.name, si.quantity, si.unit_price, si.subtotal
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ?
		ORDER BY si.line_no`, saleID)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	items := []domain.SaleLineItem{}
	for rows.Next() {
		var li domain.SaleLineItem
		if err := rows.Scan(
			&li.ID, &li.SaleID, &li.ProductID, &li.ProductName,
			&li.Quantity, &li.UnitPrice, &li.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale items: %w", err)
	}
	return items, nil
}

// storeErr wraps an underlying store error, mapping retriable MySQL
// serialization failures to domain.ErrTxConflict.
func storeErr(op string, err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && (me.Number == mysqlDeadlock || me.Number == mysqlLockWaitTimeout) {
		return fmt.Errorf("%s: %w", op, domain.ErrTxConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
