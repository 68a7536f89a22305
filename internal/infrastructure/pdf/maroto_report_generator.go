// Package pdf genera la representación imprimible de una orden de laboratorio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: N° de orden + estado  │  Fecha                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE / PROVEEDOR: nombres comerciales               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total línea              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / TOTAL                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/tu-usuario/labstock-api/internal/application/usecase"
	"github.com/tu-usuario/labstock-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 92, Blue: 78}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.OrderReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa usecase.OrderReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateOrderPDF genera el PDF de la orden y devuelve sus bytes.
// Los perfiles pueden venir nil: se usa un placeholder en su lugar.
func (g *MarotoReportGenerator) GenerateOrderPDF(
	order *entity.LabOrder,
	requester, assignee *entity.Profile,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de laboratorio "+order.OrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(requester, assignee))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	if order.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Notas: "+order.Notes, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: número de orden + estado (izq) y fecha (der).
func headerRow(order *entity.LabOrder) core.Row {
	fecha := order.CreatedAt.Format("02/01/2006")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ORDEN DE LABORATORIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+order.Status, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// partiesRow: solicitante y proveedor asignado.
func partiesRow(requester, assignee *entity.Profile) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(profileName(requester), props.Text{Size: 9, Top: 7}),
		),
		col.New(6).Add(
			text.New("PROVEEDOR ASIGNADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(profileName(assignee), props.Text{Size: 9, Top: 7}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total línea", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de la orden.
func tableItemRows(items []entity.LabOrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+it.LineTotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(order *entity.LabOrder) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: 2})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 9,
		})
	}
	return row.New(18).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 2),
			label("TOTAL:", 9),
		),
		col.New(4).Add(
			value("$"+order.Subtotal.StringFixed(2)),
			grand("$"+order.Total.StringFixed(2)),
		),
	)
}

func profileName(p *entity.Profile) string {
	if p == nil || p.BusinessName == "" {
		return "—"
	}
	return p.BusinessName
}
