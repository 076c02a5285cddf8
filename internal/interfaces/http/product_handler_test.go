package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdelorenc/tienda-api/internal/application/usecase"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	apphttp "github.com/mdelorenc/tienda-api/internal/interfaces/http"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

// fakeProductRepo puerto de productos en memoria para los tests de handlers.
type fakeProductRepo struct {
	products []*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products = append(r.products, &cp)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) UpdateStock(id string, stock int) error { return nil }

func (r *fakeProductRepo) Delete(id string) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			break
		}
	}
	return nil
}

// buildProductApp monta las rutas del catálogo con una sesión premium fija.
func buildProductApp(repo *fakeProductRepo) *fiber.App {
	uc := usecase.NewProductUseCase(repo)
	h := apphttp.NewProductHandler(uc, nil, logger.Nop())

	app := fiber.New()
	products := app.Group("/api/products", func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalSession, &entity.Session{Email: "ana@x.com", Role: entity.RolePremium})
		return c.Next()
	})
	products.Get("/", h.List)
	products.Get("/search", h.Search)
	return app
}

func getBody(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func TestList_CatalogoVacioLoDice(t *testing.T) {
	app := buildProductApp(&fakeProductRepo{})

	resp, body := getBody(t, app, "/api/products/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No hay productos publicados")
}

func TestList_SinEnlacesAAddToCart(t *testing.T) {
	repo := &fakeProductRepo{}
	require.NoError(t, repo.Create(&entity.Product{
		ID: "p1", Title: "Mate imperial", Price: decimal.NewFromInt(4500), Stock: 3, Owner: "b@x.com",
	}))
	app := buildProductApp(repo)

	resp, body := getBody(t, app, "/api/products/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Mate imperial")
	assert.Contains(t, body, `data-product-id="p1"`)
	// addToCart es PUT: un <a href> en el listado dispararía GET y un 405.
	assert.NotContains(t, body, "addToCart")
}

func TestSearch_PrimeraCoincidenciaSinTildes(t *testing.T) {
	repo := &fakeProductRepo{}
	require.NoError(t, repo.Create(&entity.Product{
		ID: "p1", Title: "Café de Colombia", Price: decimal.NewFromInt(900), Stock: 5, Owner: "b@x.com",
	}))
	app := buildProductApp(repo)

	resp, body := getBody(t, app, "/api/products/search?title=cafe%20de%20colombia")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Café de Colombia")
}
