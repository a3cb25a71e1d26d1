// Package backend arma el backend de referencia (casos de uso + Fiber) sobre
// un juego de repositorios. Lo usan cmd/api y el modo embebido de la consola.
package backend

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront/internal/application/auth"
	"github.com/jhoicas/storefront/internal/application/seed"
	"github.com/jhoicas/storefront/internal/application/usecase"
	"github.com/jhoicas/storefront/internal/domain/repository"
	"github.com/jhoicas/storefront/internal/infrastructure/memory"
	"github.com/jhoicas/storefront/internal/infrastructure/postgres"
	apphttp "github.com/jhoicas/storefront/internal/interfaces/http"
)

// Repos repositorios que consume el backend.
type Repos struct {
	Users      repository.UserRepository
	Orders     repository.OrderRepository
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
}

// MemoryRepos repositorios en memoria vacíos.
func MemoryRepos() Repos {
	return Repos{
		Users:      memory.NewUserRepository(),
		Orders:     memory.NewOrderRepository(),
		Products:   memory.NewProductRepository(),
		Categories: memory.NewCategoryRepository(),
	}
}

// PostgresRepos repositorios sobre PostgreSQL (pool o tx).
func PostgresRepos(q postgres.Querier) Repos {
	return Repos{
		Users:      postgres.NewUserRepository(q),
		Orders:     postgres.NewOrderRepository(q),
		Products:   postgres.NewProductRepository(q),
		Categories: postgres.NewCategoryRepository(q),
	}
}

// Options configuración del backend.
type Options struct {
	Name        string
	JWT         auth.JWTConfig
	Statuses    []string
	SwaggerFile string
	Seed        bool
	Log         zerolog.Logger
}

// New construye la app Fiber; con Seed carga los datos de demostración.
func New(ctx context.Context, repos Repos, opts Options) (*fiber.App, error) {
	authUC := auth.NewAuthUseCase(repos.Users, opts.JWT)
	orderUC := usecase.NewOrderUseCase(repos.Orders, opts.Statuses)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Categories)

	if opts.Seed {
		err := seed.Run(ctx, seed.Deps{
			Auth:       authUC,
			Orders:     orderUC,
			Products:   repos.Products,
			Categories: repos.Categories,
			Log:        opts.Log,
		})
		if err != nil {
			return nil, err
		}
	}

	app := apphttp.NewApp(apphttp.AppConfig{
		Name:        opts.Name,
		SwaggerFile: opts.SwaggerFile,
		Log:         opts.Log,
	}, apphttp.RouterDeps{
		AuthUC:    authUC,
		OrderUC:   orderUC,
		ProductUC: productUC,
		JWTSecret: opts.JWT.Secret,
	})
	return app, nil
}

// Embedded backend en memoria con datos de demostración, listo para
// servirse con apphttp.InProcessTransport.
func Embedded(ctx context.Context, jwtSecret string, log zerolog.Logger) (*fiber.App, error) {
	return New(ctx, MemoryRepos(), Options{
		Name: "storefront-embedded",
		JWT: auth.JWTConfig{
			Secret:     jwtSecret,
			ExpMinutes: 60,
			Issuer:     "storefront",
		},
		Seed: true,
		Log:  log,
	})
}
