package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WriteOffItemDTO línea del acta de baja.
type WriteOffItemDTO struct {
	ProductName     string          `json:"product_name"`
	InventoryNumber string          `json:"inventory_number"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Reason          string          `json:"reason"`
}

// CreateWriteOffActRequest alta de acta de baja (borrador o definitiva).
type CreateWriteOffActRequest struct {
	ActNumber         string            `json:"act_number"`
	Title             string            `json:"title"`
	ActDate           string            `json:"act_date"` // YYYY-MM-DD
	Responsible       string            `json:"responsible_person"`
	ApprovedBy        string            `json:"approved_by"`
	CommissionMembers []string          `json:"commission_members"`
	Reason            string            `json:"reason"`
	Items             []WriteOffItemDTO `json:"items"`
	CreatedBy         string            `json:"created_by"`
	IsDraft           bool              `json:"is_draft"`
}

// WriteOffActResponse acta completa con total calculado.
type WriteOffActResponse struct {
	ID                string            `json:"id"`
	ActNumber         string            `json:"act_number"`
	Title             string            `json:"title"`
	ActDate           string            `json:"act_date"`
	Responsible       string            `json:"responsible_person"`
	ApprovedBy        string            `json:"approved_by"`
	CommissionMembers []string          `json:"commission_members"`
	Reason            string            `json:"reason"`
	Items             []WriteOffItemDTO `json:"items"`
	TotalSum          decimal.Decimal   `json:"total_sum"`
	CreatedBy         string            `json:"created_by"`
	IsDraft           bool              `json:"is_draft"`
	CreatedAt         time.Time         `json:"created_at"`
}

// WriteOffActListResponse actas ordenadas por fecha descendente.
type WriteOffActListResponse struct {
	Acts []WriteOffActResponse `json:"acts"`
}
