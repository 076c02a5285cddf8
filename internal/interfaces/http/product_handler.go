package http

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mdelorenc/tienda-api/internal/application/dto"
	"github.com/mdelorenc/tienda-api/internal/application/usecase"
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/internal/domain/policy"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

// ProductHandler maneja el catálogo: publicación, baja, listado y búsqueda.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	pdf *usecase.CatalogPDFUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler del catálogo.
func NewProductHandler(uc *usecase.ProductUseCase, pdf *usecase.CatalogPDFUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, pdf: pdf, log: log}
}

// Create godoc
// @Summary      Publicar un producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "title, description, price, stock, category"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetSession(c), in)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(out)
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo cuentas premium o admin pueden publicar productos"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido; price y stock no pueden ser negativos"})
	default:
		h.log.Error().Err(err).Msg("publicar producto")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo publicar el producto"})
	}
}

// CreateForm godoc
// @Summary      Formulario de publicación
// @Tags         products
// @Produce      html
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/products/create-product [get]
func (h *ProductHandler) CreateForm(c *fiber.Ctx) error {
	if !policy.Can(GetSession(c), policy.ProductCreate, nil) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo cuentas premium o admin pueden publicar productos"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Publicar producto</title></head>
<body>
  <h2>Publicar producto</h2>
  <form action="/api/products" method="post">
    <label>Título: <input type="text" name="title" required></label><br>
    <label>Descripción: <input type="text" name="description"></label><br>
    <label>Precio: <input type="number" name="price" min="0" step="0.01" required></label><br>
    <label>Stock: <input type="number" name="stock" min="0" required></label><br>
    <label>Categoría: <input type="text" name="category"></label><br>
    <button type="submit">Publicar</button>
  </form>
</body>
</html>`)
}

// DeleteConfirm godoc
// @Summary      Confirmación de baja de un producto
// @Tags         products
// @Produce      html
// @Param        id  path  string  true  "id del producto"
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/delete-product/{id} [get]
func (h *ProductHandler) DeleteConfirm(c *fiber.Ctx) error {
	id := c.Params("id")
	err := h.uc.Delete(GetSession(c), id)
	switch {
	case err == nil:
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Producto eliminado</title></head>
<body>
  <h2>Producto eliminado</h2>
  <p>El producto %s fue dado de baja.</p>
  <p><a href="/api/products">Volver al catálogo</a></p>
</body>
</html>`, html.EscapeString(id)))
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "el producto no existe"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el dueño del producto o un admin pueden eliminarlo"})
	default:
		h.log.Error().Err(err).Str("product_id", id).Msg("eliminar producto")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo eliminar el producto"})
	}
}

// List godoc
// @Summary      Listado del catálogo
// @Tags         products
// @Produce      html
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		h.log.Error().Err(err).Msg("listar catálogo")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo listar el catálogo"})
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Catálogo</title></head>
<body>
  <h2>Catálogo de productos</h2>
`)
	if len(list) == 0 {
		b.WriteString("  <p>No hay productos publicados</p>\n")
	} else {
		b.WriteString("  <ul>\n")
		for _, p := range list {
			// Sin enlace a addToCart: esa ruta es PUT y un <a href> siempre
			// dispara GET. El id queda como dato para el cliente que consuma
			// la página.
			fmt.Fprintf(&b, "    <li data-product-id=%q>%s: $ %s (stock %d)</li>\n",
				p.ID, html.EscapeString(p.Title), p.Price.StringFixed(2), p.Stock)
		}
		b.WriteString("  </ul>\n")
	}
	b.WriteString("</body>\n</html>")

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(b.String())
}

// Search godoc
// @Summary      Buscar un producto por título
// @Description  Coincidencia insensible a mayúsculas y tildes; devuelve la primera.
// @Tags         products
// @Produce      json
// @Param        title  query  string  true  "título a buscar"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	title := c.Query("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido"})
	}
	out, err := h.uc.GetByName(title)
	if err != nil {
		h.log.Error().Err(err).Str("title", title).Msg("buscar producto")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo buscar el producto"})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "no se encontró un producto con ese título"})
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar el catálogo como PDF
// @Tags         products
// @Produce      application/pdf
// @Success      200
// @Router       /api/products/export.pdf [get]
func (h *ProductHandler) ExportPDF(c *fiber.Ctx) error {
	data, err := h.pdf.Export(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("exportar catálogo PDF")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el PDF"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="catalogo.pdf"`)
	return c.Send(data)
}
