package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "storefront/internal/errors"
	"storefront/internal/inventory/repository"
)

type Repository interface {
	List(ctx context.Context) ([]repository.InventoryItem, error)
	LowStock(ctx context.Context, threshold int) ([]repository.InventoryItem, error)
	Report(ctx context.Context) ([]repository.CategoryReport, error)
	SetQuantity(ctx context.Context, productID int, quantity int) error
}

const defaultLowStockThreshold = 10

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

func (c *Controller) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := c.repo.List(r.Context())
	if err != nil {
		c.writeError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, items)
}

func (c *Controller) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := defaultLowStockThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "threshold must be a non-negative number"})
			return
		}
		threshold = parsed
	}

	items, err := c.repo.LowStock(r.Context(), threshold)
	if err != nil {
		c.writeError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, items)
}

func (c *Controller) Report(w http.ResponseWriter, r *http.Request) {
	report, err := c.repo.Report(r.Context())
	if err != nil {
		c.writeError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, report)
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (c *Controller) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Product ID must be a valid number"})
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "request body must be valid JSON"})
		return
	}

	if req.Quantity == nil || *req.Quantity < 0 {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "quantity must be a non-negative number"})
		return
	}

	if err := c.repo.SetQuantity(r.Context(), productID, *req.Quantity); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Inventory record not found"})
			return
		}
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Inventory updated successfully"})
}

func (c *Controller) writeError(w http.ResponseWriter, err error) {
	c.logger.Error("inventory request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
