package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una posición del catálogo del almacén.
// Quantity admite fracciones (unidades a granel); el estado derivado (critical/low/in stock)
// NO se persiste: se recalcula siempre a partir de Quantity y MinStock (ver domain/stock).
type Product struct {
	ID              string
	Name            string
	InventoryNumber string // número de inventario / SKU, único
	Quantity        decimal.Decimal
	MinStock        decimal.Decimal // umbral de stock mínimo
	Price           decimal.Decimal // precio unitario
	Batch           string          // etiqueta de lote, ej. "2024-09"
	Unit            string          // unidad de medida, ej. "pcs"
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
