package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/dto"
	apperrors "storefront/internal/errors"
)

// Mock implementations

type mockCreateOrderUseCase struct {
	CreateOrderFunc func(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreationResult, error)
}

func (m *mockCreateOrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreationResult, error) {
	return m.CreateOrderFunc(ctx, req)
}

type mockOrderReader struct {
	FindDetailByIDFunc func(ctx context.Context, id uint) (*dto.OrderDetail, error)
	ListByCustomerFunc func(ctx context.Context, customerID int) ([]dto.OrderSummary, error)
	UpdateStatusFunc   func(ctx context.Context, id uint, status string, trackingNumber *string) error
}

func (m *mockOrderReader) FindDetailByID(ctx context.Context, id uint) (*dto.OrderDetail, error) {
	return m.FindDetailByIDFunc(ctx, id)
}

func (m *mockOrderReader) ListByCustomer(ctx context.Context, customerID int) ([]dto.OrderSummary, error) {
	return m.ListByCustomerFunc(ctx, customerID)
}

func (m *mockOrderReader) UpdateStatus(ctx context.Context, id uint, status string, trackingNumber *string) error {
	return m.UpdateStatusFunc(ctx, id, status, trackingNumber)
}

type mockOrderItemReader struct {
	FindDetailsByOrderIDFunc func(ctx context.Context, orderID uint) ([]dto.OrderItemDetail, error)
}

func (m *mockOrderItemReader) FindDetailsByOrderID(ctx context.Context, orderID uint) ([]dto.OrderItemDetail, error) {
	return m.FindDetailsByOrderIDFunc(ctx, orderID)
}

type mockCustomerChecker struct {
	ExistsFunc func(ctx context.Context, id int) (bool, error)
}

func (m *mockCustomerChecker) Exists(ctx context.Context, id int) (bool, error) {
	return m.ExistsFunc(ctx, id)
}

func newTestController(
	useCase CreateOrderUseCase,
	orderRepo OrderReader,
	orderItemRepo OrderItemReader,
	customerRepo CustomerChecker,
) *OrderController {
	return NewOrderController(useCase, orderRepo, orderItemRepo, customerRepo, zap.NewNop())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// Tests

func TestCreateOrder_Created(t *testing.T) {
	useCase := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreationResult, error) {
			assert.Equal(t, 1, req.CustomerID)
			assert.Equal(t, "123 Main St", req.ShippingAddress)
			assert.Len(t, req.Items, 2)
			return &dto.OrderCreationResult{OrderID: 42, TotalAmount: 25.0}, nil
		},
	}

	c := newTestController(useCase, nil, nil, nil)

	payload := `{"customer_id":1,"shipping_address":"123 Main St","items":[{"product_id":1,"quantity":2},{"product_id":2,"quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	c.CreateOrder(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Order created successfully", body["message"])
	assert.Equal(t, float64(42), body["order_id"])
	assert.Equal(t, 25.0, body["total_amount"])
}

func TestCreateOrder_InvalidJSON(t *testing.T) {
	c := newTestController(&mockCreateOrderUseCase{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{nope`))
	rec := httptest.NewRecorder()

	c.CreateOrder(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
}

func TestCreateOrder_ValidationFailure(t *testing.T) {
	useCase := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreationResult, error) {
			return nil, apperrors.NewValidationError("Validation failed",
				apperrors.ValidationDetail{Field: "customer_id", Code: apperrors.CodeRequired, Message: "Customer ID is required"},
				apperrors.ValidationDetail{Field: "items", Code: apperrors.CodeRequired, Message: "Order items are required"},
			)
		},
	}

	c := newTestController(useCase, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	c.CreateOrder(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Validation failed", body["message"])
	assert.Len(t, body["errors"], 2)
}

func TestCreateOrder_CustomerNotFound(t *testing.T) {
	useCase := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreationResult, error) {
			return nil, apperrors.NewNotFoundError("Customer with id 99 not found")
		},
	}

	c := newTestController(useCase, nil, nil, nil)

	payload := `{"customer_id":99,"shipping_address":"123 Main St","items":[{"product_id":1,"quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	c.CreateOrder(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, float64(99), body["customer_id"])
}

func TestCreateOrder_BusinessRuleFailure(t *testing.T) {
	useCase := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreationResult, error) {
			return nil, apperrors.NewBusinessRuleError("Product validation failed",
				apperrors.RuleViolation{ProductID: 5, Code: apperrors.CodeInsufficientStock, Message: "Insufficient inventory for Widget. Available: 5, Requested: 6"},
			)
		},
	}

	c := newTestController(useCase, nil, nil, nil)

	payload := `{"customer_id":1,"shipping_address":"123 Main St","items":[{"product_id":5,"quantity":6}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	c.CreateOrder(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Product validation failed", body["message"])
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, errs, 1)
	violation := errs[0].(map[string]interface{})
	assert.Equal(t, float64(5), violation["product_id"])
	assert.Equal(t, apperrors.CodeInsufficientStock, violation["code"])
}

func TestCreateOrder_PersistenceFailure(t *testing.T) {
	useCase := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreationResult, error) {
			return nil, apperrors.NewInternalError("Errors occurred while processing order items: boom", nil)
		},
	}

	c := newTestController(useCase, nil, nil, nil)

	payload := `{"customer_id":1,"shipping_address":"123 Main St","items":[{"product_id":1,"quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	c.CreateOrder(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Failed to create order", body["message"])
	assert.Contains(t, body["error"], "processing order items")
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func TestGetOrder_InvalidID(t *testing.T) {
	c := newTestController(nil, &mockOrderReader{}, nil, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil), "id", "abc")
	rec := httptest.NewRecorder()

	c.GetOrder(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid order ID", body["message"])
}

func TestGetOrder_NotFound(t *testing.T) {
	orderRepo := &mockOrderReader{
		FindDetailByIDFunc: func(ctx context.Context, id uint) (*dto.OrderDetail, error) {
			return nil, apperrors.NewNotFoundError("order with id 9 not found")
		},
	}

	c := newTestController(nil, orderRepo, nil, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/9", nil), "id", "9")
	rec := httptest.NewRecorder()

	c.GetOrder(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_Success(t *testing.T) {
	orderRepo := &mockOrderReader{
		FindDetailByIDFunc: func(ctx context.Context, id uint) (*dto.OrderDetail, error) {
			return &dto.OrderDetail{ID: id, CustomerID: 1, CustomerName: "John Doe", TotalAmount: 25.0, Status: "pending"}, nil
		},
	}
	orderItemRepo := &mockOrderItemReader{
		FindDetailsByOrderIDFunc: func(ctx context.Context, orderID uint) ([]dto.OrderItemDetail, error) {
			return []dto.OrderItemDetail{
				{ID: 1, ProductID: 1, ProductName: "Widget", Quantity: 2, Price: 10.0},
			}, nil
		},
	}

	c := newTestController(nil, orderRepo, orderItemRepo, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/3", nil), "id", "3")
	rec := httptest.NewRecorder()

	c.GetOrder(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "John Doe", data["customer_name"])
	assert.Len(t, data["items"], 1)
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	c := newTestController(nil, &mockOrderReader{}, nil, nil)

	req := withURLParam(
		httptest.NewRequest(http.MethodPatch, "/api/orders/3/status", strings.NewReader(`{"status":"canceled"}`)),
		"id", "3")
	rec := httptest.NewRecorder()

	c.UpdateOrderStatus(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid status", body["message"])
	assert.Len(t, body["valid_statuses"], 4)
}

func TestUpdateOrderStatus_Success(t *testing.T) {
	var gotStatus string
	var gotTracking *string

	orderRepo := &mockOrderReader{
		UpdateStatusFunc: func(ctx context.Context, id uint, status string, trackingNumber *string) error {
			gotStatus = status
			gotTracking = trackingNumber
			return nil
		},
	}

	c := newTestController(nil, orderRepo, nil, nil)

	req := withURLParam(
		httptest.NewRequest(http.MethodPatch, "/api/orders/3/status", strings.NewReader(`{"status":"shipped","tracking_number":"TRK-1"}`)),
		"id", "3")
	rec := httptest.NewRecorder()

	c.UpdateOrderStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shipped", gotStatus)
	require.NotNil(t, gotTracking)
	assert.Equal(t, "TRK-1", *gotTracking)

	body := decodeBody(t, rec)
	assert.Equal(t, "shipped", body["new_status"])
}

func TestGetCustomerOrders_CustomerNotFound(t *testing.T) {
	customerRepo := &mockCustomerChecker{
		ExistsFunc: func(ctx context.Context, id int) (bool, error) {
			return false, nil
		},
	}

	c := newTestController(nil, &mockOrderReader{}, nil, customerRepo)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/customer/7", nil), "customerID", "7")
	rec := httptest.NewRecorder()

	c.GetCustomerOrders(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Customer not found", body["message"])
}

func TestGetCustomerOrders_Success(t *testing.T) {
	customerRepo := &mockCustomerChecker{
		ExistsFunc: func(ctx context.Context, id int) (bool, error) {
			return true, nil
		},
	}
	orderRepo := &mockOrderReader{
		ListByCustomerFunc: func(ctx context.Context, customerID int) ([]dto.OrderSummary, error) {
			return []dto.OrderSummary{
				{ID: 2, CustomerID: customerID, TotalAmount: 30.0, Status: "pending"},
				{ID: 1, CustomerID: customerID, TotalAmount: 10.0, Status: "delivered"},
			}, nil
		},
	}

	c := newTestController(nil, orderRepo, nil, customerRepo)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/customer/7", nil), "customerID", "7")
	rec := httptest.NewRecorder()

	c.GetCustomerOrders(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["data"], 2)
}
