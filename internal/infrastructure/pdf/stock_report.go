// Package pdf genera el informe de stock de una bodega usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la bodega │ Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | Categoría | Unidad | Cantidad | Umbral       │
//	│         (items bajo umbral resaltados)                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: items totales / items bajo umbral                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/invorya/bodega-api/internal/application/export"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// StockReportGenerator implementa export.PDFRenderer usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

var _ export.PDFRenderer = (*StockReportGenerator)(nil)

// StockReport genera el informe y devuelve sus bytes.
func (g *StockReportGenerator) StockReport(warehouseName string, rows []export.StockRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(warehouseName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(warehouseName string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Informe de stock — "+warehouseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(8).Add(
		header("Item", 4),
		header("Categoría", 3),
		header("Unidad", 2),
		header("Cantidad", 2),
		header("Umbral", 1),
	)
}

func tableRow(r export.StockRow) core.Row {
	color := colorGray
	if r.Low {
		color = colorAlert
	}
	cell := func(value string, size int, alignTo align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 9, Color: color, Align: alignTo}))
	}
	return row.New(6).Add(
		cell(r.Name, 4, align.Left),
		cell(r.Category, 3, align.Left),
		cell(r.Unit, 2, align.Left),
		cell(strconv.Itoa(r.Count), 2, align.Right),
		cell(strconv.Itoa(r.LowLimit), 1, align.Right),
	)
}

func totalsRow(rows []export.StockRow) core.Row {
	low := 0
	for _, r := range rows {
		if r.Low {
			low++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Items: %d — bajo umbral: %d", len(rows), low), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 2, Align: align.Right, Color: colorPrimary,
			}),
		),
	)
}
