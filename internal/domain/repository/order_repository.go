package repository

import (
	"context"

	"github.com/jhoicas/storefront/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos.
// Los listados se devuelven del más reciente al más antiguo.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error)
}
