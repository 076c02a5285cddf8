// Package pdf implementa la exportación del catálogo de productos como PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Catálogo de productos + fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Título | Categoría | Precio | Stock | Publicado por  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mdelorenc/tienda-api/internal/application/usecase"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.CatalogPDFGenerator = (*MarotoCatalogGenerator)(nil)

// MarotoCatalogGenerator implementa usecase.CatalogPDFGenerator usando Maroto v2.
type MarotoCatalogGenerator struct{}

// NewMarotoCatalogGenerator construye el generador.
func NewMarotoCatalogGenerator() *MarotoCatalogGenerator { return &MarotoCatalogGenerator{} }

// GenerateCatalogPDF genera el PDF del catálogo y devuelve sus bytes.
func (g *MarotoCatalogGenerator) GenerateCatalogPDF(_ context.Context, products []*entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo de productos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, p := range products {
		m.AddRows(productRow(p))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%d productos publicados", len(products)), props.Text{
				Size: 8, Color: colorGray, Top: 2, Align: align.Right,
			}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título del documento y fecha de generación.
func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Catálogo de productos", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Top: 4, Color: colorGray, Align: align.Right,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	return row.New(8).Add(
		col.New(4).Add(text.New("Título", header)),
		col.New(2).Add(text.New("Categoría", header)),
		col.New(2).Add(text.New("Precio", aligned(header, align.Right))),
		col.New(1).Add(text.New("Stock", aligned(header, align.Right))),
		col.New(3).Add(text.New("Publicado por", header)),
	)
}

func productRow(p *entity.Product) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	return row.New(6).Add(
		col.New(4).Add(text.New(p.Title, cell)),
		col.New(2).Add(text.New(p.Category, cell)),
		col.New(2).Add(text.New("$ "+p.Price.StringFixed(2), aligned(cell, align.Right))),
		col.New(1).Add(text.New(strconv.Itoa(p.Stock), aligned(cell, align.Right))),
		col.New(3).Add(text.New(p.Owner, cell)),
	)
}

func aligned(base props.Text, a align.Type) props.Text {
	base.Align = a
	return base
}
