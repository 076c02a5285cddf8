package usecase

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mdelorenc/tienda-api/internal/application/dto"
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/policy"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo con autorización por rol y ownership.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create publica un producto. Solo premium o admin; el owner es siempre el
// email del actor. Precio y stock no pueden ser negativos.
func (uc *ProductUseCase) Create(actor *entity.Session, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !policy.Can(actor, policy.ProductCreate, nil) {
		return nil, domain.ErrForbidden
	}
	if in.Title == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Owner:       actor.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Solo el owner o un admin; un producto
// inexistente es not-found, distinto de la denegación.
func (uc *ProductUseCase) Delete(actor *entity.Session, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if !policy.Can(actor, policy.ProductDelete, product) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// GetByID obtiene un producto, o (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List devuelve el catálogo completo con paginación.
func (uc *ProductUseCase) List(limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// GetByName devuelve el primer producto cuyo título coincide, ignorando
// mayúsculas y tildes ("Cafe" encuentra "Café"). Helper de administración.
func (uc *ProductUseCase) GetByName(title string) (*dto.ProductResponse, error) {
	want := normalizeTitle(title)
	list, err := uc.repo.List(1000, 0)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if normalizeTitle(p.Title) == want {
			return toProductResponse(p), nil
		}
	}
	return nil, nil
}

// normalizeTitle baja a minúsculas y descarta marcas diacríticas (NFD + Mn).
func normalizeTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Owner:       p.Owner,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
