package entity

import "github.com/shopspring/decimal"

// CartItem snapshot de un producto agregado al carrito. El servidor es la
// autoridad en el checkout; aquí no se valida nada más allá del formato.
type CartItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity,omitempty"`
}

// SearchState estado del buscador: palabra clave + resultados (no persiste).
type SearchState struct {
	Keyword string    `json:"keyword"`
	Results []Product `json:"results"`
}
