package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	Name            string          `json:"name"`
	InventoryNumber string          `json:"inventory_number"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinStock        decimal.Decimal `json:"min_stock"`
	Price           decimal.Decimal `json:"price"`
	Batch           string          `json:"batch"`
	Unit            string          `json:"unit"`
}

// UpdateProductRequest actualización parcial; campos nil no se tocan.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Quantity *decimal.Decimal `json:"quantity"`
	MinStock *decimal.Decimal `json:"min_stock"`
	Price    *decimal.Decimal `json:"price"`
	Batch    *string          `json:"batch"`
	Unit     *string          `json:"unit"`
}

// ProductResponse producto con su estado derivado.
// Status se calcula siempre en servidor o en la estación; nunca viene de la DB.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	InventoryNumber string          `json:"inventory_number"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinStock        decimal.Decimal `json:"min_stock"`
	Price           decimal.Decimal `json:"price"`
	Batch           string          `json:"batch"`
	Unit            string          `json:"unit"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse listado en el orden de la consulta (created_at DESC).
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}
