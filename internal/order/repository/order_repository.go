package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `INSERT INTO orders (customer_id, shipping_address, total_amount, status) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, order.CustomerID, order.ShippingAddress, order.TotalAmount, order.Status)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindDetailByID(ctx context.Context, id uint) (*dto.OrderDetail, error) {
	query := `
		SELECT o.id, o.customer_id, o.shipping_address, o.total_amount, o.status,
		       o.tracking_number, o.created_at, c.name, c.email
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		WHERE o.id = ?
	`

	var detail dto.OrderDetail
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID, &detail.CustomerID, &detail.ShippingAddress, &detail.TotalAmount,
		&detail.Status, &detail.TrackingNumber, &detail.CreatedAt,
		&detail.CustomerName, &detail.CustomerEmail,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &detail, nil
}

func (r *MySQLOrderRepository) ListByCustomer(ctx context.Context, customerID int) ([]dto.OrderSummary, error) {
	query := `
		SELECT id, customer_id, shipping_address, total_amount, status, tracking_number, created_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("querying customer orders: %w", err)
	}
	defer rows.Close()

	orders := []dto.OrderSummary{}
	for rows.Next() {
		var o dto.OrderSummary
		err := rows.Scan(&o.ID, &o.CustomerID, &o.ShippingAddress, &o.TotalAmount, &o.Status, &o.TrackingNumber, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, status string, trackingNumber *string) error {
	var existing uint
	err := r.db.QueryRowContext(ctx, `SELECT id FROM orders WHERE id = ?`, id).Scan(&existing)
	if err == sql.ErrNoRows {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return fmt.Errorf("querying order by id: %w", err)
	}

	query := `UPDATE orders SET status = ?, tracking_number = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, status, trackingNumber, id); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return nil
}
