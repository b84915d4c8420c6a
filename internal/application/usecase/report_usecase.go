package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/stock"
)

// ReportUseCase agrega las cifras del panel: totales de stock, alertas y
// flujo mensual de entradas/salidas.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(productRepo repository.ProductRepository, movRepo repository.MovementRepository) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, movRepo: movRepo}
}

// StockSummary recorre catálogo e historial y devuelve el resumen.
func (uc *ReportUseCase) StockSummary() (*dto.StockSummaryResponse, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	summary := &dto.StockSummaryResponse{
		TotalQuantity: decimal.Zero,
		TotalValue:    decimal.Zero,
	}
	for _, p := range products {
		summary.TotalQuantity = summary.TotalQuantity.Add(p.Quantity)
		summary.TotalValue = summary.TotalValue.Add(p.Quantity.Mul(p.Price))
		switch stock.StatusFor(p.Quantity, p.MinStock) {
		case stock.StatusCritical:
			summary.CriticalCount++
		case stock.StatusLow:
			summary.LowCount++
		}
	}

	movements, err := uc.movRepo.ListRecent(0)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]*dto.MonthlyFlow)
	for _, m := range movements {
		month := m.CreatedAt.Format("2006-01")
		flow := byMonth[month]
		if flow == nil {
			flow = &dto.MonthlyFlow{Month: month, Incoming: decimal.Zero, Outgoing: decimal.Zero}
			byMonth[month] = flow
		}
		// Quantity lleva signo: positiva entrada, negativa salida
		if m.Quantity.GreaterThanOrEqual(decimal.Zero) {
			flow.Incoming = flow.Incoming.Add(m.Quantity)
		} else {
			flow.Outgoing = flow.Outgoing.Add(m.Quantity.Neg())
		}
	}
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		summary.MonthlyFlows = append(summary.MonthlyFlows, *byMonth[month])
	}
	return summary, nil
}
