package search

import (
	"context"
	"errors"
)

type ctxKey struct{}

// ErrNoProvider se pidió el buscador fuera de su proveedor.
var ErrNoProvider = errors.New("useSearch must be used within a SearchProvider")

// NewContext provee el buscador a los componentes descendientes.
func NewContext(ctx context.Context, c *Container) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext devuelve el buscador provisto o ErrNoProvider.
func FromContext(ctx context.Context) (*Container, error) {
	c, ok := ctx.Value(ctxKey{}).(*Container)
	if !ok || c == nil {
		return nil, ErrNoProvider
	}
	return c, nil
}

// MustFromContext entra en pánico si no hay proveedor.
func MustFromContext(ctx context.Context) *Container {
	c, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return c
}
