package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront/internal/application/auth"
	"github.com/jhoicas/storefront/internal/application/usecase"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	OrderUC   *usecase.OrderUseCase
	ProductUC *usecase.ProductUseCase
	JWTSecret string
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	requireAdmin := RequireRole(entity.RoleAdmin)

	// Auth: registro y login públicos; verificaciones de los gates y perfil con token
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/user-auth", requireAuth, authHandler.Check)
	authGroup.Get("/admin-auth", requireAuth, requireAdmin, authHandler.Check)
	authGroup.Put("/profile", requireAuth, authHandler.UpdateProfile)

	// Catálogo (público)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/search/:keyword", productHandler.Search)
	products.Get("/category/:slug", productHandler.ByCategory)

	// Pedidos (protegido; el cambio de estado solo admin)
	orders := api.Group("/orders", requireAuth)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/statuses", orderHandler.Statuses)
	orders.Put("/:id/status", requireAdmin, orderHandler.UpdateStatus)
}
