package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados por defecto que anuncia el backend de referencia. El cliente no los
// usa como tabla de transiciones: siempre consulta GET /orders/statuses.
var DefaultOrderStatuses = []string{
	"Not Processed",
	"Processing",
	"Shipped",
	"Delivered",
	"Cancelled",
}

// Order representa un pedido creado en el checkout.
type Order struct {
	ID        string
	Status    string
	Buyer     OrderBuyer
	Payment   PaymentInfo
	Products  []Product
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderBuyer referencia al comprador del pedido.
type OrderBuyer struct {
	ID   string
	Name string
}

// PaymentInfo resumen del pago asociado (el procesamiento del pago queda fuera).
type PaymentInfo struct {
	Success       bool
	TransactionID string
	Amount        decimal.Decimal
}

// Total suma los precios de los productos del pedido.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(p.Price)
	}
	return total
}
