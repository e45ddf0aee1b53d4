package domain

import "time"

type Order struct {
	ID              uint
	CustomerID      int
	ShippingAddress string
	TotalAmount     float64
	Status          string
	TrackingNumber  *string
	CreatedAt       time.Time
}

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
)

// ValidOrderStatuses lists every status the status-update operation
// accepts, in lifecycle order.
var ValidOrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID int
	Quantity  int
	Price     float64
}
