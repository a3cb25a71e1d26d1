package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Buyer     BuyerResponse     `json:"buyer"`
	Payment   PaymentResponse   `json:"payment"`
	Products  []ProductResponse `json:"products"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// BuyerResponse comprador embebido en el pedido.
type BuyerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaymentResponse resumen del pago.
type PaymentResponse struct {
	Success       bool            `json:"success"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// UpdateOrderStatusRequest entrada para PUT /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderStatusesResponse estados válidos que anuncia el backend.
type OrderStatusesResponse struct {
	Statuses []string `json:"statuses"`
}
