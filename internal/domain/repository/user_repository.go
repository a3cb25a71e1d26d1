package repository

import (
	"context"

	"github.com/jhoicas/storefront/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Find* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
