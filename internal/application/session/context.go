package session

import (
	"context"
	"errors"
)

type ctxKey struct{}

// ErrNoProvider indica que se pidió la sesión fuera de su proveedor (defecto de cableado).
var ErrNoProvider = errors.New("useAuth must be used within an AuthProvider")

// NewContext devuelve un contexto que provee m a los componentes descendientes.
func NewContext(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, ctxKey{}, m)
}

// FromContext devuelve el Manager provisto o ErrNoProvider.
func FromContext(ctx context.Context) (*Manager, error) {
	m, ok := ctx.Value(ctxKey{}).(*Manager)
	if !ok || m == nil {
		return nil, ErrNoProvider
	}
	return m, nil
}

// MustFromContext como FromContext pero entra en pánico: usar solo donde la
// ausencia del proveedor es un error de programación.
func MustFromContext(ctx context.Context) *Manager {
	m, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return m
}
