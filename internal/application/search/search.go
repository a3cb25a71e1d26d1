// Package search guarda la última búsqueda del catálogo. No persiste: cada
// arranque empieza con {keyword:"", results:[]}.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/storefront/internal/application/state"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

// API endpoint de búsqueda del backend.
type API interface {
	SearchProducts(ctx context.Context, keyword string) ([]entity.Product, error)
}

// Container estado del buscador.
type Container struct {
	c *state.Container[entity.SearchState]
}

// New construye el buscador con el valor por defecto.
func New() *Container {
	return &Container{c: state.New(entity.SearchState{Results: []entity.Product{}}, state.NoPersistence[entity.SearchState]())}
}

// Get devuelve una copia del estado.
func (s *Container) Get() entity.SearchState {
	v := s.c.Get()
	v.Results = append([]entity.Product{}, v.Results...)
	return v
}

// Set reemplaza el estado completo.
func (s *Container) Set(v entity.SearchState) {
	if v.Results == nil {
		v.Results = []entity.Product{}
	}
	s.c.Set(v)
}

// Run ejecuta GET /products/search/:keyword y guarda palabra + resultados.
// Si falla el estado anterior se conserva.
func (s *Container) Run(ctx context.Context, api API, keyword string) ([]entity.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		s.Set(entity.SearchState{})
		return []entity.Product{}, nil
	}
	results, err := api.SearchProducts(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	s.Set(entity.SearchState{Keyword: keyword, Results: results})
	return append([]entity.Product{}, results...), nil
}

// Subscribe notifica cada cambio.
func (s *Container) Subscribe(fn func(entity.SearchState)) (unsubscribe func()) {
	return s.c.Subscribe(fn)
}
