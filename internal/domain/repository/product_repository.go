package repository

import (
	"context"

	"github.com/jhoicas/storefront/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo que usa la tienda.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Search filtra por nombre o descripción (sin ranking).
	Search(ctx context.Context, keyword string) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, categorySlug string) ([]*entity.Product, error)
}

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
