package dto

import "time"

type OrderDetail struct {
	ID              uint              `json:"id"`
	CustomerID      int               `json:"customer_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	ShippingAddress string            `json:"shipping_address"`
	TotalAmount     float64           `json:"total_amount"`
	Status          string            `json:"status"`
	TrackingNumber  *string           `json:"tracking_number"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemDetail `json:"items"`
}

type OrderItemDetail struct {
	ID          uint    `json:"id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type OrderSummary struct {
	ID              uint      `json:"id"`
	CustomerID      int       `json:"customer_id"`
	ShippingAddress string    `json:"shipping_address"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	TrackingNumber  *string   `json:"tracking_number"`
	CreatedAt       time.Time `json:"created_at"`
}
