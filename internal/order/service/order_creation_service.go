package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/dto"
	apperrors "storefront/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, productID int) (*domain.Product, error)
	DecrementQuantity(ctx context.Context, tx *sql.Tx, productID int, quantity int) error
}

type InventoryRepository interface {
	Decrement(ctx context.Context, tx *sql.Tx, productID int, quantity int) error
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
}

// OrderCreationService runs the transactional part of order creation:
// price and stock-check every item under row locks, insert the order and
// its items, decrement inventory, commit only if everything succeeded.
type OrderCreationService struct {
	db            TransactionManager
	productRepo   ProductRepository
	inventoryRepo InventoryRepository
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
	txTimeout     time.Duration
}

func NewOrderCreationService(
	db TransactionManager,
	productRepo ProductRepository,
	inventoryRepo InventoryRepository,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *OrderCreationService {
	return &OrderCreationService{
		db:            db,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
		txTimeout:     txTimeout,
	}
}

// pricedLine is an item that passed the stock check, priced from the
// product row read under lock.
type pricedLine struct {
	productID int
	quantity  int
	unitPrice float64
}

func (s *OrderCreationService) CreateOrder(
	ctx context.Context,
	customerID int,
	shippingAddress string,
	items []dto.OrderItemInput,
) (*dto.OrderCreationResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Rollback on every exit path. MySQL ignores it once committed.
	defer tx.Rollback()

	lines, totalAmount, err := s.priceAndCheckStock(txCtx, tx, items)
	if err != nil {
		return nil, err
	}

	orderID, err := s.orderRepo.Insert(txCtx, tx, domain.Order{
		CustomerID:      customerID,
		ShippingAddress: shippingAddress,
		TotalAmount:     totalAmount,
		Status:          domain.OrderStatusPending,
	})
	if err != nil {
		s.logger.Error("failed to insert order", zap.Int("customerId", customerID), zap.Error(err))
		return nil, err
	}

	// Per-item failures do not short-circuit the loop: every remaining
	// item is still attempted so the caller sees the full set of
	// problems, then the whole transaction is rolled back.
	var itemErrors []string
	for _, line := range lines {
		if err := s.persistLine(txCtx, tx, orderID, line); err != nil {
			itemErrors = append(itemErrors, fmt.Sprintf("Error processing order item for product %d: %v", line.productID, err))
		}
	}

	if len(itemErrors) > 0 {
		s.logger.Error("order item persistence failed, rolling back",
			zap.Uint("orderId", orderID), zap.Int("errorCount", len(itemErrors)))
		return nil, apperrors.NewInternalError(
			"Errors occurred while processing order items: "+strings.Join(itemErrors, ", "), nil)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order committed",
		zap.Uint("orderId", orderID),
		zap.Int("itemCount", len(lines)),
		zap.Float64("totalAmount", totalAmount))

	return &dto.OrderCreationResult{
		OrderID:     orderID,
		TotalAmount: totalAmount,
	}, nil
}

// priceAndCheckStock reads every product under a row lock, accumulates
// ALL per-item violations instead of stopping at the first, and returns
// the priced lines plus the order total when everything is in stock.
func (s *OrderCreationService) priceAndCheckStock(
	ctx context.Context,
	tx *sql.Tx,
	items []dto.OrderItemInput,
) ([]pricedLine, float64, error) {
	var violations []apperrors.RuleViolation
	var lines []pricedLine
	totalAmount := 0.0

	for _, item := range items {
		product, err := s.productRepo.FindByIDForUpdate(ctx, tx, item.ProductID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				violations = append(violations, apperrors.RuleViolation{
					ProductID: item.ProductID,
					Code:      apperrors.CodeProductNotFound,
					Message:   fmt.Sprintf("Product with ID %d not found", item.ProductID),
				})
				continue
			}
			return nil, 0, err
		}

		if !product.HasStockFor(item.Quantity) {
			violations = append(violations, apperrors.RuleViolation{
				ProductID: item.ProductID,
				Code:      apperrors.CodeInsufficientStock,
				Message: fmt.Sprintf("Insufficient inventory for %s. Available: %d, Requested: %d",
					product.Name, product.Quantity, item.Quantity),
			})
			continue
		}

		totalAmount += product.Price * float64(item.Quantity)
		lines = append(lines, pricedLine{
			productID: item.ProductID,
			quantity:  item.Quantity,
			unitPrice: product.Price,
		})
	}

	if len(violations) > 0 {
		return nil, 0, apperrors.NewBusinessRuleError("Product validation failed", violations...)
	}

	return lines, totalAmount, nil
}

func (s *OrderCreationService) persistLine(ctx context.Context, tx *sql.Tx, orderID uint, line pricedLine) error {
	_, err := s.orderItemRepo.Insert(ctx, tx, domain.OrderItem{
		OrderID:   orderID,
		ProductID: line.productID,
		Quantity:  line.quantity,
		Price:     line.unitPrice,
	})
	if err != nil {
		return err
	}

	if err := s.productRepo.DecrementQuantity(ctx, tx, line.productID, line.quantity); err != nil {
		return err
	}

	return s.inventoryRepo.Decrement(ctx, tx, line.productID, line.quantity)
}
