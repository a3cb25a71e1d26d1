package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront/internal/application/dto"
	"github.com/jhoicas/storefront/internal/application/usecase"
)

// ProductHandler lecturas públicas del catálogo.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar productos
// @Tags         products
// @Produce      json
// @Param        keyword  path  string  true  "Palabra clave"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/v1/products/search/{keyword} [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Params("keyword"))
	if err != nil {
		return writeError(c, err, "sin resultados")
	}
	return c.JSON(out)
}

// ByCategory godoc
// @Summary      Productos de una categoría
// @Tags         products
// @Produce      json
// @Param        slug  path  string  true  "Slug de la categoría"
// @Success      200  {object}  dto.CategoryProductsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/category/{slug} [get]
func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SLUG", Message: "slug es requerido"})
	}
	out, err := h.uc.ByCategory(c.UserContext(), slug)
	if err != nil {
		return writeError(c, err, "categoría no encontrada")
	}
	return c.JSON(out)
}
