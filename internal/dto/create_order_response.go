package dto

type CreateOrderResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	OrderID     uint    `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

// OrderCreationResult is what the workflow hands back to the controller
// on commit.
type OrderCreationResult struct {
	OrderID     uint
	TotalAmount float64
}
