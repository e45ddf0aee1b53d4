package product

import (
	"database/sql"

	"go.uber.org/zap"

	"storefront/internal/product/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLProductRepository(db)
	return NewController(repo, logger)
}
