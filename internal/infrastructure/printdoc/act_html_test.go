package printdoc_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/printdoc"
)

func TestRenderActHTML_DocumentoCompleto(t *testing.T) {
	act := &entity.WriteOffAct{
		ActNumber:         "AB-2026-014",
		ActDate:           time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Responsible:       "Ana Torres",
		ApprovedBy:        "Luis Rojas",
		CommissionMembers: []string{"Marta Vidal", "Pedro Lema"},
		Reason:            "Deterioro",
		Items: []entity.WriteOffItem{
			{
				ProductName:     "Teclado inalámbrico",
				InventoryNumber: "KB-002",
				Quantity:        decimal.NewFromInt(3),
				Price:           decimal.RequireFromString("45000.00"),
				Reason:          "Roto",
			},
		},
	}

	out, err := printdoc.NewHTMLRenderer().RenderActHTML(act)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "AB-2026-014")
	assert.Contains(t, html, "Teclado inalámbrico")
	assert.Contains(t, html, "KB-002")
	assert.Contains(t, html, "Comisión: Marta Vidal, Pedro Lema",
		"los miembros de la comisión van separados por coma")
	assert.Contains(t, html, "Fecha: 20/08/2026")
	assert.Contains(t, html, "Total del acta:")
}
