// Package pdf implementa la generación del acta de baja de inventario como
// documento imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del acta  │  N° Acta + Fecha                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMISIÓN: responsable, aprueba, miembros                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | N° Inv | Precio | Suma | Motivo│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL ACTA                                             │
//	│  FIRMAS: responsable / aprobó / comisión                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.ActPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ usecase.ActPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateActPDF genera el PDF del acta y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateActPDF(act *entity.WriteOffAct) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de baja de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(act))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(commissionRow(act))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(act.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(act))

	m.AddRows(line.NewRow(6))
	for _, r := range signatureRows(act) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del acta (izq) y número + fecha (der).
func headerRow(act *entity.WriteOffAct) core.Row {
	title := act.Title
	if title == "" {
		title = "ACTA DE BAJA DE INVENTARIO"
	}
	fecha := act.ActDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Motivo: "+nonEmpty(act.Reason, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ACTA N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(act.ActNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// commissionRow: responsable, quien aprueba y miembros de la comisión.
func commissionRow(act *entity.WriteOffAct) core.Row {
	members := "—"
	if len(act.CommissionMembers) > 0 {
		members = strings.Join(act.CommissionMembers, ", ")
	}
	return row.New(18).Add(
		col.New(12).Add(
			text.New("COMISIÓN DE BAJA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Responsable: %s   |   Aprueba: %s",
				nonEmpty(act.Responsible, "—"),
				nonEmpty(act.ApprovedBy, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New("Miembros: "+members, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas del acta.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 4, align.Left),
		h("N° Inv.", 2, align.Left),
		h("Precio", 2, align.Right),
		h("Suma", 2, align.Right),
		h("Motivo", 1, align.Left),
	)
}

// tableItemRows: una fila por línea del acta.
func tableItemRows(items []entity.WriteOffItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		suma := it.Price.Mul(it.Quantity)
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.InventoryNumber,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(it.Price.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(suma.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.Reason,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// totalRow: total del acta alineado a la derecha.
func totalRow(act *entity.WriteOffAct) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL DEL ACTA:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(act.TotalSum().StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// signatureRows: líneas de firma del responsable, quien aprueba y la comisión.
func signatureRows(act *entity.WriteOffAct) []core.Row {
	sig := func(role, name string) core.Row {
		return row.New(12).Add(
			col.New(4).Add(text.New(role, props.Text{Size: 8, Color: colorGray, Top: 2})),
			col.New(4).Add(text.New("_____________________", props.Text{Size: 9, Align: align.Center, Top: 2})),
			col.New(4).Add(text.New(name, props.Text{Size: 9, Top: 2})),
		)
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("FIRMAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		sig("Responsable material:", nonEmpty(act.Responsible, "—")),
		sig("Aprobó:", nonEmpty(act.ApprovedBy, "—")),
	}
	for _, m := range act.CommissionMembers {
		rows = append(rows, sig("Miembro de la comisión:", m))
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

// formatMoney inserta espacios de miles en la parte entera de un string
// numérico, conservando signo y fracción. Ej: "25000.00" → "25 000.00"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart := s
	frac := ""
	for i := range s {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + frac
	}
	buf := make([]byte, 0, n+n/3+len(frac))
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, intPart[i])
	}
	return sign + string(buf) + frac
}
