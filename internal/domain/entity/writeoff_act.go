package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WriteOffItem una línea del acta: producto, cantidad y motivo de la baja.
// Se guarda denormalizado dentro del acta (JSON) para que el documento sea autocontenido.
type WriteOffItem struct {
	ProductName     string          `json:"product_name"`
	InventoryNumber string          `json:"inventory_number"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Reason          string          `json:"reason"`
}

// WriteOffAct acta de baja de inventario: documento contable con comisión y firmantes.
type WriteOffAct struct {
	ID                string
	ActNumber         string
	Title             string
	ActDate           time.Time
	Responsible       string   // persona materialmente responsable
	ApprovedBy        string   // quien aprueba el acta
	CommissionMembers []string // miembros de la comisión de baja
	Reason            string
	Items             []WriteOffItem
	CreatedBy         string
	IsDraft           bool
	CreatedAt         time.Time
}

// TotalSum suma de precio×cantidad de todas las líneas.
func (a *WriteOffAct) TotalSum() decimal.Decimal {
	total := decimal.Zero
	for _, it := range a.Items {
		total = total.Add(it.Price.Mul(it.Quantity))
	}
	return total
}
