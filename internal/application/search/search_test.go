package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront/internal/application/search"
	"github.com/jhoicas/storefront/internal/domain"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

type fakeAPI struct {
	results []entity.Product
	err     error
	calls   []string
}

func (f *fakeAPI) SearchProducts(_ context.Context, keyword string) ([]entity.Product, error) {
	f.calls = append(f.calls, keyword)
	return f.results, f.err
}

func TestNew_ValorPorDefecto(t *testing.T) {
	s := search.New()
	got := s.Get()
	assert.Equal(t, "", got.Keyword)
	assert.NotNil(t, got.Results)
	assert.Empty(t, got.Results)
}

func TestFromContext_SinProveedor(t *testing.T) {
	_, err := search.FromContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be used within a SearchProvider")

	assert.PanicsWithError(t, search.ErrNoProvider.Error(), func() {
		search.MustFromContext(context.Background())
	})
}

func TestFromContext_ConProveedor(t *testing.T) {
	s := search.New()
	got := search.MustFromContext(search.NewContext(context.Background(), s))
	assert.Same(t, s, got)
}

func TestRun_GuardaPalabraYResultados(t *testing.T) {
	api := &fakeAPI{results: []entity.Product{{ID: "p1", Name: "Laptop"}}}
	s := search.New()

	out, err := s.Run(context.Background(), api, "  laptop ")
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, []string{"laptop"}, api.calls)
	assert.Equal(t, "laptop", s.Get().Keyword)
	assert.Equal(t, "Laptop", s.Get().Results[0].Name)
}

func TestRun_ErrorConservaEstado(t *testing.T) {
	api := &fakeAPI{results: []entity.Product{{ID: "p1"}}}
	s := search.New()
	_, err := s.Run(context.Background(), api, "laptop")
	require.NoError(t, err)

	api.err = domain.ErrUnavailable
	_, err = s.Run(context.Background(), api, "otra")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, "laptop", s.Get().Keyword)
}

func TestRun_PalabraVaciaNoLlamaAlBackend(t *testing.T) {
	api := &fakeAPI{}
	s := search.New()
	out, err := s.Run(context.Background(), api, "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, api.calls)
	assert.NotNil(t, s.Get().Results)
}
