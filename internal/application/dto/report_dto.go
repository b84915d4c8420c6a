package dto

import "github.com/shopspring/decimal"

// MonthlyFlow entradas y salidas agregadas de un mes (YYYY-MM).
type MonthlyFlow struct {
	Month    string          `json:"month"`
	Incoming decimal.Decimal `json:"incoming"`
	Outgoing decimal.Decimal `json:"outgoing"`
}

// StockSummaryResponse cifras del panel: totales y alertas de stock.
type StockSummaryResponse struct {
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowCount      int             `json:"low_count"`
	CriticalCount int             `json:"critical_count"`
	MonthlyFlows  []MonthlyFlow   `json:"monthly_flows"`
}

// ImportResultResponse resultado del import de catálogo desde Excel.
type ImportResultResponse struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}
