package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mdelorenc/tienda-api/internal/application/dto"
	"github.com/mdelorenc/tienda-api/internal/application/usecase"
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

// CartHandler maneja el carrito del usuario autenticado.
type CartHandler struct {
	uc  *usecase.CartUseCase
	log *logger.Logger
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(uc *usecase.CartUseCase, log *logger.Logger) *CartHandler {
	return &CartHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Carrito del usuario
// @Tags         carts
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carts [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.uc.Get(GetSession(c))
	if err != nil {
		h.log.Error().Err(err).Msg("leer carrito")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo leer el carrito"})
	}
	out := dto.CartResponse{ID: cart.ID, Items: make([]dto.CartItemResponse, 0, len(cart.Items))}
	for _, item := range cart.Items {
		out.Items = append(out.Items, dto.CartItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return c.JSON(out)
}

// AddToCart godoc
// @Summary      Agregar un producto al carrito
// @Tags         carts
// @Produce      json
// @Param        productId  query  string  true  "id del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/addToCart [put]
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	productID := c.Query("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
	}
	err := h.uc.Add(GetSession(c), productID)
	switch {
	case err == nil:
		return c.JSON(dto.MessageResponse{Message: "Producto agregado al carrito"})
	case errors.Is(err, domain.ErrOwnProduct):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OWN_PRODUCT", Message: "No puedes agregar tu propio producto al carrito"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "el producto no existe"})
	default:
		h.log.Error().Err(err).Str("product_id", productID).Msg("agregar al carrito")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo agregar el producto"})
	}
}

// Increment godoc
// @Summary      Sumar cantidad a una línea existente
// @Tags         carts
// @Accept       json
// @Param        body  body  dto.IncrementRequest  true  "product_id, quantity"
// @Success      302
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts [post]
func (h *CartHandler) Increment(c *fiber.Ctx) error {
	var in dto.IncrementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	err := h.uc.Increment(GetSession(c), in.ProductID, in.Quantity)
	switch {
	case err == nil:
		return c.Redirect("/cart", fiber.StatusFound)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un entero positivo"})
	case errors.Is(err, domain.ErrNotInCart):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_IN_CART", Message: "el producto no está en el carrito"})
	default:
		h.log.Error().Err(err).Str("product_id", in.ProductID).Msg("incrementar línea")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo actualizar el carrito"})
	}
}

// RemoveProduct godoc
// @Summary      Quitar la línea completa de un producto
// @Tags         carts
// @Param        pid  path  string  true  "id del producto"
// @Success      302
// @Router       /api/carts/removeProduct/{pid} [delete]
func (h *CartHandler) RemoveProduct(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(GetSession(c), c.Params("pid")); err != nil {
		h.log.Error().Err(err).Str("product_id", c.Params("pid")).Msg("quitar línea")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo quitar el producto"})
	}
	return c.Redirect("/cart", fiber.StatusFound)
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         carts
// @Success      302
// @Router       /api/carts/clear [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(GetSession(c)); err != nil {
		h.log.Error().Err(err).Msg("vaciar carrito")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo vaciar el carrito"})
	}
	return c.Redirect("/cart", fiber.StatusFound)
}

// Purchase godoc
// @Summary      Comprar el carrito
// @Description  Cumple línea por línea: descuenta stock y suelta la línea
// @Description  cuando alcanza; las líneas sin stock quedan en el carrito.
// @Tags         carts
// @Success      302
// @Router       /api/carts/purchase [post]
func (h *CartHandler) Purchase(c *fiber.Ctx) error {
	if err := h.uc.Purchase(c.Context(), GetSession(c)); err != nil {
		h.log.Error().Err(err).Msg("compra del carrito")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo completar la compra"})
	}
	return c.Redirect("/cart", fiber.StatusFound)
}
