package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"storefront/internal/dto"
	apperrors "storefront/internal/errors"
)

type OrderCreationService interface {
	CreateOrder(ctx context.Context, customerID int, shippingAddress string, items []dto.OrderItemInput) (*dto.OrderCreationResult, error)
}

type CustomerRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// CreateOrderUseCase drives one order-creation invocation: collect every
// input violation first, check the customer exists, then hand the items
// to the transactional service, retrying on MySQL deadlocks.
type CreateOrderUseCase struct {
	customerRepo     CustomerRepository
	creationSvc      OrderCreationService
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewCreateOrderUseCase(
	customerRepo CustomerRepository,
	creationSvc OrderCreationService,
	logger *zap.Logger,
	maxRetryAttempts int,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		customerRepo:     customerRepo,
		creationSvc:      creationSvc,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreationResult, error) {
	uc.logger.Info("order creation started",
		zap.Int("customerId", req.CustomerID),
		zap.Int("itemCount", len(req.Items)))

	if err := validateCreateOrderRequest(req); err != nil {
		return nil, err
	}

	exists, err := uc.customerRepo.Exists(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("Customer with id %d not found", req.CustomerID))
	}

	// Consistent lock order across concurrent invocations keeps
	// deadlocks rare.
	items := make([]dto.OrderItemInput, len(req.Items))
	copy(items, req.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	return uc.createWithRetry(ctx, req.CustomerID, req.ShippingAddress, items)
}

// validateCreateOrderRequest collects every field violation rather than
// stopping at the first so a caller can fix all of them in one round
// trip.
func validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.CustomerID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customer_id",
			Code:    apperrors.CodeRequired,
			Message: "Customer ID is required",
		})
	}

	if req.ShippingAddress == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "shipping_address",
			Code:    apperrors.CodeRequired,
			Message: "Shipping address is required",
		})
	}

	if req.Items == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Code:    apperrors.CodeRequired,
			Message: "Order items are required",
		})
	} else if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Code:    apperrors.CodeInvalid,
			Message: "Order must contain at least one item",
		})
	} else {
		for idx, item := range req.Items {
			if item.ProductID == 0 {
				details = append(details, apperrors.ValidationDetail{
					Field:   fmt.Sprintf("items[%d].product_id", idx),
					Code:    apperrors.CodeRequired,
					Message: fmt.Sprintf("Product ID is required for item at index %d", idx),
				})
			}
			if item.Quantity <= 0 {
				details = append(details, apperrors.ValidationDetail{
					Field:   fmt.Sprintf("items[%d].quantity", idx),
					Code:    apperrors.CodeInvalid,
					Message: fmt.Sprintf("Valid quantity is required for item at index %d", idx),
				})
			}
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("Validation failed", details...)
	}

	return nil
}

func (uc *CreateOrderUseCase) createWithRetry(
	ctx context.Context,
	customerID int,
	shippingAddress string,
	items []dto.OrderItemInput,
) (*dto.OrderCreationResult, error) {
	maxAttempts := uc.maxRetryAttempts
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := uc.creationSvc.CreateOrder(ctx, customerID, shippingAddress, items)
		if err == nil {
			return result, nil
		}

		if isDeadlockError(err) {
			if attempt < maxAttempts {
				backoff := backoffs[len(backoffs)-1]
				if attempt-1 < len(backoffs) {
					backoff = backoffs[attempt-1]
				}
				jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
				time.Sleep(jitter)
				uc.logger.Warn("deadlock detected, retrying",
					zap.Int("attempt", attempt),
					zap.Int("maxAttempts", maxAttempts),
					zap.Int("customerId", customerID))
				continue
			}
			break
		}

		return nil, err
	}

	return nil, apperrors.NewDeadlockError("max retries exceeded")
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
