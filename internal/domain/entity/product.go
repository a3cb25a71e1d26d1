package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
type Product struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	Category    string // slug de la categoría
	Quantity    int
	Shipping    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
