package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/errors"
	"storefront/internal/testutil"
)

func setupOrderTest(t *testing.T) (*sql.DB, int, int) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	customerID := testutil.SeedCustomer(t, db, "John Doe", "john@example.com")
	productID := testutil.SeedProduct(t, db, "Widget", 10.00, 100)
	return db, customerID, productID
}

func insertOrderTx(t *testing.T, db *sql.DB, repo *MySQLOrderRepository, order domain.Order) uint {
	t.Helper()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	id, err := repo.Insert(context.Background(), tx, order)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	return id
}

func TestOrderRepository_InsertAndFindDetail(t *testing.T) {
	db, customerID, _ := setupOrderTest(t)
	repo := NewMySQLOrderRepository(db)

	orderID := insertOrderTx(t, db, repo, domain.Order{
		CustomerID:      customerID,
		ShippingAddress: "123 Main St",
		TotalAmount:     25.50,
		Status:          domain.OrderStatusPending,
	})
	assert.NotZero(t, orderID)

	detail, err := repo.FindDetailByID(context.Background(), orderID)
	require.NoError(t, err)

	assert.Equal(t, orderID, detail.ID)
	assert.Equal(t, customerID, detail.CustomerID)
	assert.Equal(t, "John Doe", detail.CustomerName)
	assert.Equal(t, "john@example.com", detail.CustomerEmail)
	assert.Equal(t, "123 Main St", detail.ShippingAddress)
	assert.Equal(t, 25.50, detail.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, detail.Status)
	assert.Nil(t, detail.TrackingNumber)
}

func TestOrderRepository_FindDetailByID_NotFound(t *testing.T) {
	db, _, _ := setupOrderTest(t)
	repo := NewMySQLOrderRepository(db)

	_, err := repo.FindDetailByID(context.Background(), 9999)
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	db, customerID, _ := setupOrderTest(t)
	repo := NewMySQLOrderRepository(db)

	insertOrderTx(t, db, repo, domain.Order{
		CustomerID:      customerID,
		ShippingAddress: "123 Main St",
		TotalAmount:     10.00,
		Status:          domain.OrderStatusPending,
	})
	insertOrderTx(t, db, repo, domain.Order{
		CustomerID:      customerID,
		ShippingAddress: "456 Oak Ave",
		TotalAmount:     20.00,
		Status:          domain.OrderStatusShipped,
	})

	orders, err := repo.ListByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	for _, o := range orders {
		assert.Equal(t, customerID, o.CustomerID)
	}
}

func TestOrderRepository_ListByCustomer_Empty(t *testing.T) {
	db, customerID, _ := setupOrderTest(t)
	repo := NewMySQLOrderRepository(db)

	orders, err := repo.ListByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NotNil(t, orders)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db, customerID, _ := setupOrderTest(t)
	repo := NewMySQLOrderRepository(db)

	orderID := insertOrderTx(t, db, repo, domain.Order{
		CustomerID:      customerID,
		ShippingAddress: "123 Main St",
		TotalAmount:     10.00,
		Status:          domain.OrderStatusPending,
	})

	tracking := "TRK-001"
	err := repo.UpdateStatus(context.Background(), orderID, domain.OrderStatusShipped, &tracking)
	require.NoError(t, err)

	detail, err := repo.FindDetailByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, detail.Status)
	require.NotNil(t, detail.TrackingNumber)
	assert.Equal(t, "TRK-001", *detail.TrackingNumber)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	db, _, _ := setupOrderTest(t)
	repo := NewMySQLOrderRepository(db)

	err := repo.UpdateStatus(context.Background(), 9999, domain.OrderStatusShipped, nil)
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderItemRepository_InsertAndFindDetails(t *testing.T) {
	db, customerID, productID := setupOrderTest(t)
	orderRepo := NewMySQLOrderRepository(db)
	itemRepo := NewMySQLOrderItemRepository(db)

	orderID := insertOrderTx(t, db, orderRepo, domain.Order{
		CustomerID:      customerID,
		ShippingAddress: "123 Main St",
		TotalAmount:     20.00,
		Status:          domain.OrderStatusPending,
	})

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	itemID, err := itemRepo.Insert(context.Background(), tx, domain.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  2,
		Price:     10.00,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NotZero(t, itemID)

	items, err := itemRepo.FindDetailsByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, "Widget", items[0].ProductName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 10.00, items[0].Price)
}

func TestOrderItemRepository_FindDetailsByOrderID_Empty(t *testing.T) {
	db, _, _ := setupOrderTest(t)
	itemRepo := NewMySQLOrderItemRepository(db)

	items, err := itemRepo.FindDetailsByOrderID(context.Background(), 9999)
	require.NoError(t, err)
	assert.Empty(t, items)
}
