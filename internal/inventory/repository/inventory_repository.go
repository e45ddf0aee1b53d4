package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/errors"
)

// InventoryItem is an inventory row joined with its product's name and
// category, for the stock views.
type InventoryItem struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
}

// CategoryReport aggregates stock per product category.
type CategoryReport struct {
	Category        string  `json:"category"`
	TotalProducts   int     `json:"total_products"`
	TotalQuantity   int     `json:"total_quantity"`
	AverageQuantity float64 `json:"average_quantity"`
}

type MySQLInventoryRepository struct {
	db *sql.DB
}

func NewMySQLInventoryRepository(db *sql.DB) *MySQLInventoryRepository {
	return &MySQLInventoryRepository{db: db}
}

func (r *MySQLInventoryRepository) List(ctx context.Context) ([]InventoryItem, error) {
	query := `
		SELECT i.product_id, p.name, p.category, i.quantity
		FROM inventory i
		JOIN products p ON i.product_id = p.id
		ORDER BY i.quantity ASC
	`

	return r.queryItems(ctx, query)
}

func (r *MySQLInventoryRepository) LowStock(ctx context.Context, threshold int) ([]InventoryItem, error) {
	query := `
		SELECT i.product_id, p.name, p.category, i.quantity
		FROM inventory i
		JOIN products p ON i.product_id = p.id
		WHERE i.quantity < ?
		ORDER BY i.quantity ASC
	`

	return r.queryItems(ctx, query, threshold)
}

func (r *MySQLInventoryRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying inventory: %w", err)
	}
	defer rows.Close()

	items := []InventoryItem{}
	for rows.Next() {
		var item InventoryItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Category, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scanning inventory row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory rows: %w", err)
	}

	return items, nil
}

func (r *MySQLInventoryRepository) Report(ctx context.Context) ([]CategoryReport, error) {
	query := `
		SELECT p.category,
		       COUNT(*) as total_products,
		       SUM(i.quantity) as total_quantity,
		       AVG(i.quantity) as average_quantity
		FROM inventory i
		JOIN products p ON i.product_id = p.id
		GROUP BY p.category
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying inventory report: %w", err)
	}
	defer rows.Close()

	report := []CategoryReport{}
	for rows.Next() {
		var entry CategoryReport
		if err := rows.Scan(&entry.Category, &entry.TotalProducts, &entry.TotalQuantity, &entry.AverageQuantity); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		report = append(report, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report rows: %w", err)
	}

	return report, nil
}

// SetQuantity is the manual stock adjustment. It writes both the
// inventory row and the mirrored products.quantity in one transaction.
func (r *MySQLInventoryRepository) SetQuantity(ctx context.Context, productID int, quantity int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE inventory SET quantity = ? WHERE product_id = ?`, quantity, productID)
	if err != nil {
		return fmt.Errorf("updating inventory: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("inventory record for product %d not found", productID))
	}

	if _, err := tx.ExecContext(ctx, `UPDATE products SET quantity = ? WHERE id = ?`, quantity, productID); err != nil {
		return fmt.Errorf("updating product quantity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing inventory update: %w", err)
	}

	return nil
}

// Decrement runs inside the order-creation transaction.
func (r *MySQLInventoryRepository) Decrement(ctx context.Context, tx *sql.Tx, productID int, quantity int) error {
	query := `UPDATE inventory SET quantity = quantity - ? WHERE product_id = ?`

	if _, err := tx.ExecContext(ctx, query, quantity, productID); err != nil {
		return fmt.Errorf("decrementing inventory: %w", err)
	}

	return nil
}
