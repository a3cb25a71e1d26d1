package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/storefront/internal/application/dto"
	"github.com/jhoicas/storefront/internal/domain"
	"github.com/jhoicas/storefront/internal/domain/repository"
)

// ProductUseCase lecturas del catálogo que consume la tienda (búsqueda y categoría).
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories}
}

// Search busca productos por palabra clave. Sin ranking: el orden es el del repositorio.
func (uc *ProductUseCase) Search(ctx context.Context, keyword string) ([]dto.ProductResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []dto.ProductResponse{}, nil
	}
	list, err := uc.products.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}

// ByCategory devuelve la categoría y sus productos.
func (uc *ProductUseCase) ByCategory(ctx context.Context, slug string) (*dto.CategoryProductsResponse, error) {
	cat, err := uc.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.products.ListByCategory(ctx, cat.Slug)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryProductsResponse{
		Category: dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Slug: cat.Slug},
		Products: make([]dto.ProductResponse, 0, len(list)),
	}
	for _, p := range list {
		out.Products = append(out.Products, dto.FromProduct(p))
	}
	return out, nil
}
