package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/dto"
	apperrors "storefront/internal/errors"
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreationResult, error)
}

type OrderReader interface {
	FindDetailByID(ctx context.Context, id uint) (*dto.OrderDetail, error)
	ListByCustomer(ctx context.Context, customerID int) ([]dto.OrderSummary, error)
	UpdateStatus(ctx context.Context, id uint, status string, trackingNumber *string) error
}

type OrderItemReader interface {
	FindDetailsByOrderID(ctx context.Context, orderID uint) ([]dto.OrderItemDetail, error)
}

type CustomerChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type OrderController struct {
	useCase       CreateOrderUseCase
	orderRepo     OrderReader
	orderItemRepo OrderItemReader
	customerRepo  CustomerChecker
	logger        *zap.Logger
}

func NewOrderController(
	useCase CreateOrderUseCase,
	orderRepo OrderReader,
	orderItemRepo OrderItemReader,
	customerRepo CustomerChecker,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		useCase:       useCase,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		customerRepo:  customerRepo,
		logger:        logger,
	}
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":  "error",
			"message": "Validation failed",
			"errors": []apperrors.ValidationDetail{{
				Field:   "body",
				Code:    apperrors.CodeInvalid,
				Message: "request body must be valid JSON",
			}},
		})
		return
	}

	result, err := c.useCase.CreateOrder(r.Context(), req)
	if err != nil {
		c.handleCreateOrderError(w, req, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.CreateOrderResponse{
		Status:      "success",
		Message:     "Order created successfully",
		OrderID:     result.OrderID,
		TotalAmount: result.TotalAmount,
	})
}

func (c *OrderController) handleCreateOrderError(w http.ResponseWriter, req dto.CreateOrderRequest, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":  "error",
			"message": ve.Message,
			"errors":  ve.Details,
		})
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"status":      "error",
			"message":     nfe.Message,
			"customer_id": req.CustomerID,
		})
		return
	}

	if bre, ok := apperrors.IsBusinessRuleError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":  "error",
			"message": bre.Message,
			"errors":  bre.Violations,
		})
		return
	}

	logger.Error("order creation failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"status":  "error",
		"message": "Failed to create order",
		"error":   err.Error(),
	})
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := c.parseID(w, chi.URLParam(r, "id"), "Invalid order ID", "Order ID must be a valid number")
	if !ok {
		return
	}

	detail, err := c.orderRepo.FindDetailByID(r.Context(), uint(orderID))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"status":   "error",
				"message":  "Order not found",
				"order_id": orderID,
			})
			return
		}
		c.writeInternalError(w, "Failed to fetch order details", err)
		return
	}

	items, err := c.orderItemRepo.FindDetailsByOrderID(r.Context(), uint(orderID))
	if err != nil {
		c.writeInternalError(w, "Failed to fetch order details", err)
		return
	}
	detail.Items = items

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   detail,
	})
}

type updateStatusRequest struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"tracking_number"`
}

func (c *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := c.parseID(w, chi.URLParam(r, "id"), "Invalid order ID", "Order ID must be a valid number")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	if !domain.IsValidOrderStatus(req.Status) {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":         "error",
			"message":        "Invalid status",
			"valid_statuses": domain.ValidOrderStatuses,
		})
		return
	}

	err := c.orderRepo.UpdateStatus(r.Context(), uint(orderID), req.Status, req.TrackingNumber)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"status":   "error",
				"message":  "Order not found",
				"order_id": orderID,
			})
			return
		}
		c.writeInternalError(w, "Failed to update order status", err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Order status updated successfully",
		"order_id":   orderID,
		"new_status": req.Status,
	})
}

func (c *OrderController) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := c.parseID(w, chi.URLParam(r, "customerID"), "Invalid customer ID", "Customer ID must be a valid number")
	if !ok {
		return
	}

	exists, err := c.customerRepo.Exists(r.Context(), customerID)
	if err != nil {
		c.writeInternalError(w, "Failed to fetch customer orders", err)
		return
	}
	if !exists {
		c.writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"status":      "error",
			"message":     "Customer not found",
			"customer_id": customerID,
		})
		return
	}

	orders, err := c.orderRepo.ListByCustomer(r.Context(), customerID)
	if err != nil {
		c.writeInternalError(w, "Failed to fetch customer orders", err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   orders,
	})
}

func (c *OrderController) parseID(w http.ResponseWriter, raw, message, details string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":  "error",
			"message": message,
			"details": details,
		})
		return 0, false
	}
	return id, true
}

func (c *OrderController) writeInternalError(w http.ResponseWriter, message string, err error) {
	c.logger.Error(message, zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
