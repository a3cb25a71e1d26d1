// Package seed carga los datos de demostración del backend de referencia:
// un administrador, un cliente, un catálogo pequeño y pedidos del cliente.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront/internal/application/auth"
	"github.com/jhoicas/storefront/internal/application/dto"
	"github.com/jhoicas/storefront/internal/application/usecase"
	"github.com/jhoicas/storefront/internal/domain"
	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/domain/repository"
	"github.com/jhoicas/storefront/pkg/slug"
)

// Credenciales de demostración.
const (
	AdminEmail    = "admin@storefront.test"
	AdminPassword = "admin123"
	UserEmail     = "john@storefront.test"
	UserPassword  = "john123"
	UserName      = "John Doe"
)

// Deps puertos y casos de uso que usa el seed.
type Deps struct {
	Auth       *auth.AuthUseCase
	Orders     *usecase.OrderUseCase
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Log        zerolog.Logger
}

type productSeed struct {
	name, description, category string
	price                       int64
	quantity                    int
}

var categories = []string{"Electronics", "Books", "Clothing"}

var products = []productSeed{
	{name: "Laptop Pro 14", description: "Portátil liviano con 16GB RAM", category: "Electronics", price: 1299, quantity: 10},
	{name: "Smartphone X", description: "Pantalla OLED 6.1 pulgadas", category: "Electronics", price: 799, quantity: 25},
	{name: "Auriculares Inalámbricos", description: "Cancelación de ruido activa", category: "Electronics", price: 199, quantity: 40},
	{name: "El Quijote", description: "Edición de bolsillo", category: "Books", price: 15, quantity: 100},
	{name: "Go en la Práctica", description: "Programación idiomática en Go", category: "Books", price: 45, quantity: 30},
	{name: "Camiseta Algodón", description: "Camiseta básica unisex", category: "Clothing", price: 20, quantity: 80},
}

// Run carga los datos. Si el administrador ya existe no hace nada (idempotente).
func Run(ctx context.Context, d Deps) error {
	_, err := d.Auth.RegisterAdmin(ctx, dto.RegisterRequest{
		Name:     "Admin",
		Email:    AdminEmail,
		Password: AdminPassword,
		Address:  "Calle 1 # 2-3",
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		d.Log.Debug().Msg("seed: datos de demostración ya cargados")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	john, err := d.Auth.RegisterUser(ctx, dto.RegisterRequest{
		Name:     UserName,
		Email:    UserEmail,
		Password: UserPassword,
		Phone:    "3001234567",
		Address:  "Carrera 7 # 12-34",
	})
	if err != nil {
		return fmt.Errorf("seed cliente: %w", err)
	}

	now := time.Now()
	for _, name := range categories {
		cat := &entity.Category{ID: uuid.New().String(), Name: name, Slug: slug.Make(name), CreatedAt: now}
		if err := d.Categories.Create(ctx, cat); err != nil {
			return fmt.Errorf("seed categoría %s: %w", name, err)
		}
	}
	catalog := make([]entity.Product, 0, len(products))
	for _, p := range products {
		prod := &entity.Product{
			ID:          uuid.New().String(),
			Name:        p.name,
			Slug:        slug.Make(p.name),
			Description: p.description,
			Price:       decimal.NewFromInt(p.price),
			Category:    slug.Make(p.category),
			Quantity:    p.quantity,
			Shipping:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := d.Products.Create(ctx, prod); err != nil {
			return fmt.Errorf("seed producto %s: %w", p.name, err)
		}
		catalog = append(catalog, *prod)
	}

	buyer := entity.OrderBuyer{ID: john.ID, Name: john.Name}
	for _, items := range [][]entity.Product{catalog[0:2], catalog[3:5]} {
		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.Price)
		}
		payment := entity.PaymentInfo{Success: true, TransactionID: uuid.New().String(), Amount: total}
		if _, err := d.Orders.Place(ctx, buyer, items, payment); err != nil {
			return fmt.Errorf("seed pedido: %w", err)
		}
	}

	d.Log.Info().
		Int("categories", len(categories)).
		Int("products", len(catalog)).
		Msg("seed: datos de demostración cargados")
	return nil
}
