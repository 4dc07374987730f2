// Package pdf genera el reporte PDF de capacidad proyectada por especie.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de emisión                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Especie | Factor | 7 días | 14 días | Generada      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: capacidad seca total a 7 y 14 días                 │
//	│  FOOTER: leyenda de la proyección                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
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

	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/shopspring/decimal"
)

var _ ports.ForecastReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 100}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const sinDato = "—"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ForecastReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador. title es el encabezado (nombre de la planta).
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Proyección de capacidad"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateForecastReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateForecastReport(
	_ context.Context,
	rows []dto.ForecastReportRow,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de proyección de capacidad", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Capacidad seca proyectada por especie", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE PROYECCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
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
		h("Especie", 4, align.Left),
		h("Factor", 1, align.Center),
		h("7 días (kg)", 2, align.Right),
		h("14 días (kg)", 2, align.Right),
		h("Generada", 3, align.Right),
	)
}

func tableRows(rows []dto.ForecastReportRow) []core.Row {
	if len(rows) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin especies registradas.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		generada := sinDato
		if r.GeneratedAt != nil {
			generada = r.GeneratedAt.Format("02/01/2006 15:04")
		}
		out = append(out, row.New(7).Add(
			col.New(4).Add(text.New(r.SpeciesName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(r.ConversionFactor.StringFixed(2), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatKgPtr(r.Capacity7), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatKgPtr(r.Capacity14), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(generada, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray})),
		))
	}
	return out
}

func totalsRow(rows []dto.ForecastReportRow) core.Row {
	total7, total14 := decimal.Zero, decimal.Zero
	for _, r := range rows {
		if r.Capacity7 != nil {
			total7 = total7.Add(*r.Capacity7)
		}
		if r.Capacity14 != nil {
			total14 = total14.Add(*r.Capacity14)
		}
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1}
	return row.New(10).Add(
		col.New(5).Add(text.New("TOTAL CAPACIDAD SECA:", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2, Left: 1,
		})),
		col.New(2).Add(text.New(FormatKg(total7), bold)),
		col.New(2).Add(text.New(FormatKg(total14), bold)),
		col.New(3),
	)
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"La capacidad a 7 días proviene del historial de proyecciones (o del inventario vivo cuando no hay historial). "+
				"La capacidad a 14 días aplica el factor de crecimiento sobre la proyección a 7 días.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func formatKgPtr(d *decimal.Decimal) string {
	if d == nil {
		return sinDato
	}
	return FormatKg(*d)
}

// FormatKg formatea kilos con separador de miles y coma decimal.
// Ej: 1234567.5 → "1.234.567,50"
func FormatKg(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
