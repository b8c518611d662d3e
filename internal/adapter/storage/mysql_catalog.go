package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/commercekit/sales-service/internal/core/domain"
)

func (m *MySQLAdapter) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, tax_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		customer.ID, customer.Name, customer.Email, customer.TaxID, customer.CreatedAt,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, email, tax_id, created_at
		FROM customers ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.TaxID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

func (m *MySQLAdapter) FindCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, email, tax_id, created_at
		FROM customers WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.TaxID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

func (m *MySQLAdapter) CreateProduct(ctx context.Context, product *domain.Product) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Description, product.Price,
		product.Stock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, description, price, stock, created_at, updated_at
		FROM products ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (m *MySQLAdapter) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, stock, created_at, updated_at
		FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}
