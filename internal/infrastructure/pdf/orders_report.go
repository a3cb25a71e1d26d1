// Package pdf genera el reporte de pedidos del panel de administración.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Generado por + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Comprador | Estado | Pago | Productos | Total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Pedidos / TOTAL COBRADO                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: resumen por estado                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront/internal/application/orders"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ orders.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa orders.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateOrdersPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateOrdersPDF(ctx context.Context, report orders.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(nonEmpty(report.GeneratedBy, "storefront"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableOrderRows(report.Orders) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report.Orders))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(statusSummaryRow(report.Orders))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y autor + fecha (der).
func headerRow(report orders.Report) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Generado por: "+nonEmpty(report.GeneratedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Fecha: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Comprador", 3, align.Left),
		h("Estado", 2, align.Left),
		h("Pago", 1, align.Center),
		h("Productos", 3, align.Left),
		h("Total", 2, align.Right),
	)
}

// tableOrderRows: una fila por pedido, en el orden recibido.
func tableOrderRows(list []entity.Order) []core.Row {
	result := make([]core.Row, 0, len(list))
	for i, o := range list {
		payment := "Fallido"
		if o.Payment.Success {
			payment = "OK"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(o.Buyer.Name, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(o.Status, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(payment, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(productNames(o.Products), props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New("$"+formatMoney(o.Total().StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRow: cantidad de pedidos y suma de los pagos exitosos.
func totalsRow(list []entity.Order) core.Row {
	collected := decimal.Zero
	for _, o := range list {
		if o.Payment.Success {
			collected = collected.Add(o.Payment.Amount)
		}
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Pedidos:", 1), label("TOTAL COBRADO:", 7)),
		col.New(3).Add(value(fmt.Sprint(len(list)), 1), value("$"+formatMoney(collected.StringFixed(0)), 7)),
	)
}

// statusSummaryRow: conteo de pedidos por estado, en orden de primera aparición.
func statusSummaryRow(list []entity.Order) core.Row {
	counts := make(map[string]int)
	var order []string
	for _, o := range list {
		if counts[o.Status] == 0 {
			order = append(order, o.Status)
		}
		counts[o.Status]++
	}
	parts := make([]string, 0, len(order))
	for _, s := range order {
		parts = append(parts, fmt.Sprintf("%s: %d", s, counts[s]))
	}
	return row.New(8).Add(col.New(12).Add(
		text.New("Resumen por estado   "+nonEmpty(strings.Join(parts, "   |   "), "sin pedidos"), props.Text{
			Size: 7, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func productNames(list []entity.Product) string {
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
