package dto

type CreateOrderRequest struct {
	CustomerID      int              `json:"customer_id"`
	ShippingAddress string           `json:"shipping_address"`
	Items           []OrderItemInput `json:"items"`
}

// Price is accepted on the wire for compatibility with older clients but
// the server-side product price is authoritative for both the stored
// item price and the order total.
type OrderItemInput struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
}
