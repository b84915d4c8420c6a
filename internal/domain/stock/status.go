// Package stock contiene las reglas de dominio sobre niveles de stock.
package stock

import "github.com/shopspring/decimal"

// Estados derivados de un producto según su cantidad frente al stock mínimo.
// Son valores calculados: nunca se persisten ni se aceptan del exterior.
const (
	StatusCritical = "critical"
	StatusLow      = "low"
	StatusInStock  = "in stock"
)

var two = decimal.NewFromInt(2)

// StatusFor deriva el estado de un producto:
// critical si quantity <= minStock/2; low si quantity <= minStock; in stock en otro caso.
func StatusFor(quantity, minStock decimal.Decimal) string {
	if quantity.LessThanOrEqual(minStock.Div(two)) {
		return StatusCritical
	}
	if quantity.LessThanOrEqual(minStock) {
		return StatusLow
	}
	return StatusInStock
}
