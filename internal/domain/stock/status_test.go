package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/stock"
)

// TestStatusFor_Umbrales verifica la derivación del estado contra el umbral de
// stock mínimo: critical cuando quantity <= minStock/2, low cuando está entre
// minStock/2 y minStock, in stock por encima.
func TestStatusFor_Umbrales(t *testing.T) {
	cases := []struct {
		name     string
		quantity float64
		minStock float64
		want     string
	}{
		{"cantidad cero", 0, 10, stock.StatusCritical},
		{"justo en la mitad del umbral", 5, 10, stock.StatusCritical},
		{"apenas sobre la mitad", 6, 10, stock.StatusLow},
		{"justo en el umbral", 10, 10, stock.StatusLow},
		{"sobre el umbral", 11, 10, stock.StatusInStock},
		{"umbral cero con stock", 3, 0, stock.StatusInStock},
		{"umbral cero sin stock", 0, 0, stock.StatusCritical},
		{"cantidades fraccionarias", 2.5, 5, stock.StatusCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := stock.StatusFor(decimal.NewFromFloat(tc.quantity), decimal.NewFromFloat(tc.minStock))
			assert.Equal(t, tc.want, got)
		})
	}
}
