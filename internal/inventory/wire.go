package inventory

import (
	"database/sql"

	"go.uber.org/zap"

	"storefront/internal/inventory/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLInventoryRepository(db)
	return NewController(repo, logger)
}
