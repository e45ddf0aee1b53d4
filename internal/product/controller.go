package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/domain"
	apperrors "storefront/internal/errors"
	"storefront/internal/product/repository"
)

type Repository interface {
	Insert(ctx context.Context, p domain.Product) (int, error)
	List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, id int, p domain.Product) error
	Delete(ctx context.Context, id int) error
}

type productPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
}

type productResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

func (c *Controller) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "request body must be valid JSON"})
		return
	}

	id, err := c.repo.Insert(r.Context(), domain.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		Quantity:    payload.Quantity,
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      id,
		"message": "Product added successfully",
	})
}

func (c *Controller) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{
		Category:  r.URL.Query().Get("category"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("sortOrder"),
	}

	if raw := r.URL.Query().Get("minPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "minPrice must be a number"})
			return
		}
		filter.MinPrice = &price
	}
	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "maxPrice must be a number"})
			return
		}
		filter.MaxPrice = &price
	}

	products, err := c.repo.List(r.Context(), filter)
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": ve.Message,
				"errors":  ve.Details,
			})
			return
		}
		c.writeError(w, err)
		return
	}

	result := make([]productResponse, 0, len(products))
	for _, p := range products {
		result = append(result, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Quantity:    p.Quantity,
		})
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *Controller) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Product ID must be a valid number"})
		return
	}

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "request body must be valid JSON"})
		return
	}

	err = c.repo.Update(r.Context(), id, domain.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		Quantity:    payload.Quantity,
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

func (c *Controller) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Product ID must be a valid number"})
		return
	}

	if err := c.repo.Delete(r.Context(), id); err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Product and associated inventory deleted successfully"})
}

func (c *Controller) writeError(w http.ResponseWriter, err error) {
	c.logger.Error("product request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
