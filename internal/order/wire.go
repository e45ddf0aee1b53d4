package order

import (
	"database/sql"

	"go.uber.org/zap"

	"storefront/internal/config"
	customerrepo "storefront/internal/customer/repository"
	inventoryrepo "storefront/internal/inventory/repository"
	"storefront/internal/order/controller"
	orderrepo "storefront/internal/order/repository"
	"storefront/internal/order/service"
	"storefront/internal/order/usecase"
	productrepo "storefront/internal/product/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	productRepo := productrepo.NewMySQLProductRepository(db)
	inventoryRepo := inventoryrepo.NewMySQLInventoryRepository(db)
	customerRepo := customerrepo.NewMySQLCustomerRepository(db)

	creationSvc := service.NewOrderCreationService(
		db,
		productRepo,
		inventoryRepo,
		orderRepo,
		orderItemRepo,
		logger,
		cfg.Order.TxTimeout,
	)

	createOrderUC := usecase.NewCreateOrderUseCase(
		customerRepo,
		creationSvc,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return controller.NewOrderController(createOrderUC, orderRepo, orderItemRepo, customerRepo, logger)
}
