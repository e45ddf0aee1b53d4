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

func setupCustomerTest(t *testing.T) *sql.DB {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	return db
}

func strPtr(s string) *string { return &s }

func TestCustomerRepository_InsertAndFindByID(t *testing.T) {
	db := setupCustomerTest(t)
	repo := NewMySQLCustomerRepository(db)

	id, err := repo.Insert(context.Background(), domain.Customer{
		Name:    "John Doe",
		Email:   "john@example.com",
		Phone:   strPtr("555-0101"),
		Address: strPtr("123 Main St"),
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	c, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", c.Name)
	assert.Equal(t, "john@example.com", c.Email)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "555-0101", *c.Phone)
}

func TestCustomerRepository_FindByID_NotFound(t *testing.T) {
	db := setupCustomerTest(t)
	repo := NewMySQLCustomerRepository(db)

	_, err := repo.FindByID(context.Background(), 9999)
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCustomerRepository_Exists(t *testing.T) {
	db := setupCustomerTest(t)
	repo := NewMySQLCustomerRepository(db)

	id, err := repo.Insert(context.Background(), domain.Customer{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	exists, err := repo.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), 9999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCustomerRepository_List(t *testing.T) {
	db := setupCustomerTest(t)
	repo := NewMySQLCustomerRepository(db)

	_, err := repo.Insert(context.Background(), domain.Customer{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), domain.Customer{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)

	customers, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestCustomerRepository_Update(t *testing.T) {
	db := setupCustomerTest(t)
	repo := NewMySQLCustomerRepository(db)

	id, err := repo.Insert(context.Background(), domain.Customer{Name: "Old Name", Email: "old@example.com"})
	require.NoError(t, err)

	err = repo.Update(context.Background(), id, domain.Customer{
		Name:  "New Name",
		Email: "new@example.com",
	})
	require.NoError(t, err)

	c, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "New Name", c.Name)
	assert.Equal(t, "new@example.com", c.Email)
}

func TestCustomerRepository_Delete(t *testing.T) {
	db := setupCustomerTest(t)
	repo := NewMySQLCustomerRepository(db)

	id, err := repo.Insert(context.Background(), domain.Customer{Name: "Temp", Email: "temp@example.com"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), id))

	_, err = repo.FindByID(context.Background(), id)
	require.Error(t, err)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
