package usecase

import (
	"context"

	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
)

// catalogPDFMax tope de productos volcados al PDF.
const catalogPDFMax = 500

// CatalogPDFGenerator genera el documento PDF del catálogo.
// Lo implementa infrastructure/pdf.MarotoCatalogGenerator.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, products []*entity.Product) ([]byte, error)
}

// CatalogPDFUseCase exporta el catálogo completo como PDF.
type CatalogPDFUseCase struct {
	products repository.ProductRepository
	gen      CatalogPDFGenerator
}

// NewCatalogPDFUseCase construye el caso de uso.
func NewCatalogPDFUseCase(products repository.ProductRepository, gen CatalogPDFGenerator) *CatalogPDFUseCase {
	return &CatalogPDFUseCase{products: products, gen: gen}
}

// Export lista el catálogo y devuelve los bytes del PDF.
func (uc *CatalogPDFUseCase) Export(ctx context.Context) ([]byte, error) {
	list, err := uc.products.List(catalogPDFMax, 0)
	if err != nil {
		return nil, err
	}
	return uc.gen.GenerateCatalogPDF(ctx, list)
}
