package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	mu     sync.RWMutex
	orders map[string]*entity.Order
}

// NewOrderRepository construye el repositorio vacío.
func NewOrderRepository() *OrderRepo {
	return &OrderRepo{orders: make(map[string]*entity.Order)}
}

// Create persiste un pedido.
func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

// GetByID obtiene un pedido; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

// ListAll devuelve todos los pedidos, más recientes primero.
func (r *OrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	return r.filter(func(*entity.Order) bool { return true }), nil
}

// ListByBuyer devuelve los pedidos del comprador, más recientes primero.
func (r *OrderRepo) ListByBuyer(_ context.Context, buyerID string) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool { return o.Buyer.ID == buyerID }), nil
}

// UpdateStatus cambia el estado y devuelve el pedido actualizado; (nil, nil) si no existe.
func (r *OrderRepo) UpdateStatus(_ context.Context, id, status string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return cloneOrder(o), nil
}

func (r *OrderRepo) filter(keep func(*entity.Order) bool) []*entity.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Products = append([]entity.Product(nil), o.Products...)
	return &c
}
