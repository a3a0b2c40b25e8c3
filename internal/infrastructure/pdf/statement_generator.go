// Package pdf genera el estado de cuenta de una empresa con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa │ Estado + fecha de emisión   │
//	│  CONTACTO: Dirección / Persona / Email / Tel                │
//	│  PAQUETE: Nombre, precio, vencimiento, cuota usada/restante │
//	│  TABLA: Fecha | Título | Lugar | Asistentes                 │
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

	"github.com/jhoicas/eventportal-api/internal/application/report"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// StatementGenerator implementa report.StatementPDFGenerator usando Maroto v2.
type StatementGenerator struct{}

// NewStatementGenerator construye el generador.
func NewStatementGenerator() *StatementGenerator { return &StatementGenerator{} }

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) GenerateStatementPDF(_ context.Context, data report.StatementData) ([]byte, error) {
	if data.Company == nil {
		return nil, fmt.Errorf("pdf: empresa requerida")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta", true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(data.Company))
	m.AddRows(packageRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(eventRows(data.Events)...)
	if data.EventsTotal > len(data.Events) {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Mostrando %d de %d eventos.", len(data.Events), data.EventsTotal),
				props.Text{Size: 7, Color: colorGray, Top: 1}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data report.StatementData) core.Row {
	status, statusColor := "ACTIVA", colorPrimary
	if !data.Company.IsActive {
		status, statusColor = "PENDIENTE DE APROBACIÓN", colorAlert
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(data.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado de cuenta de eventos", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: statusColor, Top: 1,
			}),
			text.New("Emitido: "+data.GeneratedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func contactRow(c *entity.Company) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CONTACTO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s   |   %s", nonEmpty(c.ContactPerson, "-"), nonEmpty(c.Address, "-")),
				props.Text{Size: 8, Top: 6}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s", nonEmpty(c.ContactEmail, "-"), nonEmpty(c.ContactPhone, "-")),
				props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func packageRow(data report.StatementData) core.Row {
	c := data.Company
	if data.Package == nil {
		return row.New(12).Add(col.New(12).Add(
			text.New("PAQUETE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("Sin paquete asignado.", props.Text{Size: 9, Top: 6, Color: colorAlert}),
		))
	}

	expiry := "-"
	expiryColor := colorGray
	if c.PackageExpiryDate != nil {
		expiry = c.PackageExpiryDate.Format(dateLayout)
		if c.PackageExpired(data.GeneratedAt) {
			expiry += " (expirado)"
			expiryColor = colorAlert
		}
	}
	used := c.EventLimit - c.EventCountRemaining

	return row.New(20).Add(
		col.New(6).Add(
			text.New("PAQUETE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(data.Package.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Precio: $%s   |   Duración: %d días", data.Package.Price.StringFixed(2), data.Package.DurationDays),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Vence: %s", expiry), props.Text{
				Size: 9, Align: align.Right, Top: 1, Color: expiryColor,
			}),
			text.New(fmt.Sprintf("Eventos usados: %d de %d", used, c.EventLimit), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Disponibles: %d", c.EventCountRemaining), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Título", 5, align.Left),
		h("Lugar", 3, align.Left),
		h("Asistentes", 2, align.Right),
	)
}

func eventRows(events []*entity.Event) []core.Row {
	if len(events) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("No hay eventos registrados.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(events))
	for _, e := range events {
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(e.Date.Format(dateLayout), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(e.Title, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(e.Location, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", e.Attendees), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
