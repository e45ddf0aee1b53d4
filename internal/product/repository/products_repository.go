package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/errors"
)

// sortableColumns whitelists ORDER BY targets so query parameters never
// reach the SQL text directly.
var sortableColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"category":   "category",
	"quantity":   "quantity",
	"created_at": "created_at",
}

type ProductFilter struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
}

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

// Insert creates the product row and its inventory row in one
// transaction; a product is never visible without a stock record.
func (r *MySQLProductRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO products (name, description, price, category, quantity) VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Price, p.Category, p.Quantity,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO inventory (product_id, quantity) VALUES (?, ?)`,
		lastInsertID, p.Quantity,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting inventory record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing product insert: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLProductRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, name, description, price, category, quantity, created_at FROM products WHERE 1=1`)
	args := []interface{}{}

	if filter.Category != "" {
		sb.WriteString(" AND category = ?")
		args = append(args, filter.Category)
	}
	if filter.MinPrice != nil {
		sb.WriteString(" AND price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		sb.WriteString(" AND price <= ?")
		args = append(args, *filter.MaxPrice)
	}

	if filter.SortBy != "" {
		column, ok := sortableColumns[filter.SortBy]
		if !ok {
			return nil, errors.NewValidationError("invalid sort column", errors.ValidationDetail{
				Field:   "sortBy",
				Code:    errors.CodeInvalid,
				Message: fmt.Sprintf("cannot sort by %q", filter.SortBy),
			})
		}
		direction := "ASC"
		if strings.EqualFold(filter.SortOrder, "desc") {
			direction = "DESC"
		}
		sb.WriteString(" ORDER BY " + column + " " + direction)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Quantity, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLProductRepository) Update(ctx context.Context, id int, p domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, category = ?, quantity = ? WHERE id = ?`,
		p.Name, p.Description, p.Price, p.Category, p.Quantity, id,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE inventory SET quantity = ? WHERE product_id = ?`, p.Quantity, id)
	if err != nil {
		return fmt.Errorf("updating inventory record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing product update: %w", err)
	}

	return nil
}

// Delete removes the inventory rows before the product so the foreign
// key never dangles.
func (r *MySQLProductRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory WHERE product_id = ?`, id); err != nil {
		return fmt.Errorf("deleting inventory records: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing product delete: %w", err)
	}

	return nil
}

// FindByIDForUpdate reads a product under a row lock inside the given
// transaction. The lock is what keeps two concurrent orders from both
// passing the stock check on the same limited product.
func (r *MySQLProductRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, productID int) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, category, quantity, created_at
		FROM products
		WHERE id = ?
		FOR UPDATE
	`

	var p domain.Product
	err := tx.QueryRowContext(ctx, query, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Quantity, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product for update: %w", err)
	}

	return &p, nil
}

func (r *MySQLProductRepository) DecrementQuantity(ctx context.Context, tx *sql.Tx, productID int, quantity int) error {
	query := `UPDATE products SET quantity = quantity - ? WHERE id = ?`

	if _, err := tx.ExecContext(ctx, query, quantity, productID); err != nil {
		return fmt.Errorf("decrementing product quantity: %w", err)
	}

	return nil
}
