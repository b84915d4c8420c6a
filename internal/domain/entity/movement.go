package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementIncoming = "incoming"
	MovementOutgoing = "outgoing"
)

// Movement registra una entrada o salida de stock.
// Quantity se guarda con signo: positiva para incoming, negativa para outgoing.
// ProductName se denormaliza para que el historial sobreviva al borrado del producto.
type Movement struct {
	ID          string
	ProductID   string
	ProductName string
	Type        string // MovementIncoming | MovementOutgoing
	Quantity    decimal.Decimal
	UserName    string // nombre visible del usuario que registró la operación
	Reason      string
	Supplier    string
	Notes       string
	CreatedAt   time.Time
}
