package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest registro de una entrada o salida de stock.
// Quantity viene sin signo; el signo lo pone el caso de uso según el tipo.
type CreateMovementRequest struct {
	ProductID    string          `json:"product_id"`
	MovementType string          `json:"movement_type"` // "incoming" | "outgoing"
	Quantity     decimal.Decimal `json:"quantity"`
	UserName     string          `json:"user_name"`
	Supplier     string          `json:"supplier"`
	Reason       string          `json:"reason"`
	Notes        string          `json:"notes"`
}

// MovementResponse un movimiento del historial. Quantity lleva signo:
// positiva para incoming, negativa para outgoing.
type MovementResponse struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	ProductName  string          `json:"product_name"`
	MovementType string          `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	UserName     string          `json:"user_name"`
}

// MovementListResponse historial ordenado por fecha descendente.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
}
