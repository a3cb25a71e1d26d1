package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
)

// ProductRepo catálogo en memoria.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	fold     cases.Caser
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{products: make(map[string]*entity.Product), fold: cases.Fold()}
}

// Create persiste un producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *product
	r.products[p.ID] = &p
	return nil
}

// GetByID obtiene un producto.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

// Search coincidencia por subcadena sin distinguir mayúsculas (case folding Unicode).
func (r *ProductRepo) Search(_ context.Context, keyword string) ([]*entity.Product, error) {
	// cases.Caser no es seguro para uso concurrente.
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := r.fold.String(keyword)
	var out []*entity.Product
	for _, p := range r.products {
		if strings.Contains(r.fold.String(p.Name), needle) || strings.Contains(r.fold.String(p.Description), needle) {
			c := *p
			out = append(out, &c)
		}
	}
	sortByName(out)
	return out, nil
}

// ListByCategory productos de una categoría.
func (r *ProductRepo) ListByCategory(_ context.Context, categorySlug string) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.Category == categorySlug {
			c := *p
			out = append(out, &c)
		}
	}
	sortByName(out)
	return out, nil
}

func sortByName(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
}

// CategoryRepo categorías en memoria indexadas por slug.
type CategoryRepo struct {
	mu     sync.RWMutex
	bySlug map[string]*entity.Category
}

// NewCategoryRepository construye el repositorio vacío.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{bySlug: make(map[string]*entity.Category)}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *category
	r.bySlug[c.Slug] = &c
	return nil
}

// GetBySlug obtiene una categoría; (nil, nil) si no existe.
func (r *CategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.bySlug[slug]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

// List devuelve las categorías ordenadas por nombre.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.bySlug))
	for _, c := range r.bySlug {
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
