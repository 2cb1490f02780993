// Package pdf implementa la exportación de facturas como documento PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  N° Factura + Estado + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: usuario (nombre / email / tel)                     │
//	│  CLIENTE: nombre + contacto                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Servicio | Precio Unit. | Importe            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / TOTAL                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	inv *entity.Invoice,
	user *entity.User,
	customer *entity.Customer,
	company ports.CompanyInfo,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.ID, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(inv, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(user, company))
	m.AddRows(clienteRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableRowRows(inv.Rows) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	if inv.Comment != "" {
		m.AddRows(commentRow(inv.Comment))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y N° de factura + estado + fecha (der).
func headerRow(inv *entity.Invoice, company ports.CompanyInfo) core.Row {
	fecha := inv.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company.Address, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA "+statusLabel(inv.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos del usuario emisor.
func emisorRow(user *entity.User, company ports.CompanyInfo) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Email: %s   |   Tel: %s",
				user.Name,
				nonEmpty(user.Email, company.Email),
				nonEmpty(user.PhoneNumber, company.PhoneNumber),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clienteRow: datos del cliente facturado.
func clienteRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.Address, "—"),
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.PhoneNumber, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Servicio", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// tableRowRows: una fila por línea de la factura.
func tableRowRows(rows []entity.InvoiceRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				r.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				r.Service,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+r.Amount.Round(2).StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+r.Sum.Round(2).StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha. El subtotal se
// reconstruye desde las líneas; el descuento solo aparece si existe.
func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	subtotal := decimal.Zero
	for _, r := range inv.Rows {
		subtotal = subtotal.Add(r.Sum)
	}

	labels := []core.Component{label("Subtotal:")}
	values := []core.Component{value("$" + subtotal.Round(2).StringFixed(2))}
	if inv.Discount != nil {
		labels = append(labels, label(fmt.Sprintf("Descuento (%s%%):", inv.Discount.String())))
		values = append(values, value("-$"+subtotal.Sub(inv.TotalSum).Round(2).StringFixed(2)))
	}
	labels = append(labels, grandLabel("TOTAL:"))
	values = append(values, grandValue("$"+inv.TotalSum.Round(2).StringFixed(2)))

	return row.New(26).Add(
		col.New(3), // espacio izquierdo
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
		col.New(3), // espacio derecho
	)
}

// commentRow: comentario libre de la factura al pie.
func commentRow(comment string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Comentario: "+comment, props.Text{
			Size: 8, Color: colorGray, Top: 3,
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

// statusLabel traduce el estado de la factura para el encabezado.
func statusLabel(s entity.InvoiceStatus) string {
	switch s {
	case entity.InvoiceStatusCreated:
		return "CREADA"
	case entity.InvoiceStatusSent:
		return "ENVIADA"
	case entity.InvoiceStatusReceived:
		return "RECIBIDA"
	case entity.InvoiceStatusPaid:
		return "PAGADA"
	case entity.InvoiceStatusCancelled:
		return "CANCELADA"
	case entity.InvoiceStatusRejected:
		return "RECHAZADA"
	default:
		return string(s)
	}
}
