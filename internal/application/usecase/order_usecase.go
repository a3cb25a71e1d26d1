package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/storefront/internal/application/dto"
	"github.com/jhoicas/storefront/internal/domain"
	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/domain/repository"
)

// OrderUseCase casos de uso de pedidos: listado por identidad y cambio de estado.
type OrderUseCase struct {
	repo     repository.OrderRepository
	statuses []string
}

// NewOrderUseCase construye el caso de uso. statuses vacío usa entity.DefaultOrderStatuses.
func NewOrderUseCase(repo repository.OrderRepository, statuses []string) *OrderUseCase {
	if len(statuses) == 0 {
		statuses = entity.DefaultOrderStatuses
	}
	return &OrderUseCase{repo: repo, statuses: append([]string(nil), statuses...)}
}

// Statuses devuelve el conjunto de estados válidos (el cliente los ofrece tal cual).
func (uc *OrderUseCase) Statuses() dto.OrderStatusesResponse {
	return dto.OrderStatusesResponse{Statuses: append([]string(nil), uc.statuses...)}
}

// List devuelve los pedidos visibles para la identidad: el admin ve todos, el cliente los suyos.
func (uc *OrderUseCase) List(ctx context.Context, userID string, role int) ([]dto.OrderResponse, error) {
	var (
		list []*entity.Order
		err  error
	)
	if role == entity.RoleAdmin {
		list, err = uc.repo.ListAll(ctx)
	} else {
		list, err = uc.repo.ListByBuyer(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.FromOrder(o))
	}
	return out, nil
}

// UpdateStatus cambia el estado de un pedido. El estado debe pertenecer al conjunto anunciado.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID, status string) (*dto.OrderResponse, error) {
	if orderID == "" || !uc.validStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromOrder(order)
	return &out, nil
}

// Place crea un pedido en estado inicial (checkout simplificado para seed y tests).
func (uc *OrderUseCase) Place(ctx context.Context, buyer entity.OrderBuyer, products []entity.Product, payment entity.PaymentInfo) (*dto.OrderResponse, error) {
	if buyer.ID == "" || len(products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Status:    uc.statuses[0],
		Buyer:     buyer,
		Payment:   payment,
		Products:  append([]entity.Product(nil), products...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	out := dto.FromOrder(order)
	return &out, nil
}

func (uc *OrderUseCase) validStatus(s string) bool {
	for _, v := range uc.statuses {
		if v == s {
			return true
		}
	}
	return false
}
