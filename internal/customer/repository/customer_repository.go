package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/errors"
)

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

func (r *MySQLCustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT id, name, email, phone, address, created_at FROM customers`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, id int) (*domain.Customer, error) {
	query := `SELECT id, name, email, phone, address, created_at FROM customers WHERE id = ?`

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	return &c, nil
}

// Exists is the customer-existence check the order workflow depends on.
func (r *MySQLCustomerRepository) Exists(ctx context.Context, id int) (bool, error) {
	var found int
	err := r.db.QueryRowContext(ctx, `SELECT id FROM customers WHERE id = ?`, id).Scan(&found)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying customer by id: %w", err)
	}

	return true, nil
}

func (r *MySQLCustomerRepository) Insert(ctx context.Context, c domain.Customer) (int, error) {
	query := `INSERT INTO customers (name, email, phone, address) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.Address)
	if err != nil {
		return 0, fmt.Errorf("inserting customer: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLCustomerRepository) Update(ctx context.Context, id int, c domain.Customer) error {
	query := `UPDATE customers SET name = ?, email = ?, phone = ?, address = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.Address, id); err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (r *MySQLCustomerRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	return nil
}
