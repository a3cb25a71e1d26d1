package entity

import "time"

// Category representa una categoría del catálogo; Slug es el identificador de ruta (/category/:slug).
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}
