package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"storefront/internal/customer"
	"storefront/internal/inventory"
	ordercontroller "storefront/internal/order/controller"
	"storefront/internal/product"
)

func NewRouter(
	productCtrl *product.Controller,
	orderCtrl *ordercontroller.OrderController,
	customerCtrl *customer.Controller,
	inventoryCtrl *inventory.Controller,
	metrics *Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", productCtrl.CreateProduct)
		r.Get("/", productCtrl.ListProducts)
		r.Put("/{id}", productCtrl.UpdateProduct)
		r.Delete("/{id}", productCtrl.DeleteProduct)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", orderCtrl.CreateOrder)
		r.Get("/customer/{customerID}", orderCtrl.GetCustomerOrders)
		r.Get("/{id}", orderCtrl.GetOrder)
		r.Patch("/{id}/status", orderCtrl.UpdateOrderStatus)
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", customerCtrl.ListCustomers)
		r.Post("/", customerCtrl.CreateCustomer)
		r.Get("/{id}", customerCtrl.GetCustomer)
		r.Put("/{id}", customerCtrl.UpdateCustomer)
		r.Delete("/{id}", customerCtrl.DeleteCustomer)
	})

	r.Route("/api/inventory", func(r chi.Router) {
		r.Get("/", inventoryCtrl.ListInventory)
		r.Get("/low-stock", inventoryCtrl.LowStock)
		r.Get("/report", inventoryCtrl.Report)
		r.Patch("/{productID}", inventoryCtrl.UpdateQuantity)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}
