package customer

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/domain"
	apperrors "storefront/internal/errors"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	FindByID(ctx context.Context, id int) (*domain.Customer, error)
	Insert(ctx context.Context, c domain.Customer) (int, error)
	Update(ctx context.Context, id int, c domain.Customer) error
	Delete(ctx context.Context, id int) error
}

type customerPayload struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

func (c *Controller) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.repo.List(r.Context())
	if err != nil {
		c.writeError(w, err)
		return
	}

	result := make([]customerResponse, 0, len(customers))
	for _, cust := range customers {
		result = append(result, toCustomerResponse(cust))
	}
	c.writeJSON(w, http.StatusOK, result)
}

func (c *Controller) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Customer ID must be a valid number"})
		return
	}

	cust, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Customer not found"})
			return
		}
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toCustomerResponse(*cust))
}

func (c *Controller) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var payload customerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "request body must be valid JSON"})
		return
	}

	id, err := c.repo.Insert(r.Context(), domain.Customer{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      id,
		"message": "Customer created successfully",
	})
}

func (c *Controller) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Customer ID must be a valid number"})
		return
	}

	var payload customerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "request body must be valid JSON"})
		return
	}

	err = c.repo.Update(r.Context(), id, domain.Customer{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Customer updated successfully"})
}

func (c *Controller) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Customer ID must be a valid number"})
		return
	}

	if err := c.repo.Delete(r.Context(), id); err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

type customerResponse struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

func (c *Controller) writeError(w http.ResponseWriter, err error) {
	c.logger.Error("customer request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
