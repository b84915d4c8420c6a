// Package excel implementa el intercambio del catálogo en formato XLSX.
package excel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/stock"
)

// Columnas del archivo de intercambio, en orden.
var headers = []string{"Nombre", "N° inventario", "Cantidad", "Stock mínimo", "Precio", "Lote", "Unidad", "Estado"}

// Service importa y exporta el catálogo como XLSX.
type Service struct {
	productRepo repository.ProductRepository
}

// NewService construye el servicio.
func NewService(productRepo repository.ProductRepository) *Service {
	return &Service{productRepo: productRepo}
}

// Import lee un XLSX y hace upsert por número de inventario: si el número ya
// existe se actualizan los campos del producto, si no se crea. La columna
// Estado se ignora al importar (siempre se deriva).
func (s *Service) Import(r io.Reader) (*dto.ImportResultResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir archivo: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: leer filas: %w", err)
	}
	if len(rows) < 2 {
		return nil, domain.ErrInvalidInput
	}

	result := &dto.ImportResultResponse{}
	for i, row := range rows[1:] { // salta la cabecera
		name := cell(row, 0)
		invNumber := cell(row, 1)
		if name == "" || invNumber == "" {
			return nil, fmt.Errorf("%w: fila %d sin nombre o número de inventario", domain.ErrInvalidInput, i+2)
		}
		quantity, err := parseDecimal(cell(row, 2))
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d, cantidad inválida", domain.ErrInvalidInput, i+2)
		}
		minStock, err := parseDecimal(cell(row, 3))
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d, stock mínimo inválido", domain.ErrInvalidInput, i+2)
		}
		price, err := parseDecimal(cell(row, 4))
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d, precio inválido", domain.ErrInvalidInput, i+2)
		}

		now := time.Now()
		existing, err := s.productRepo.GetByInventoryNumber(invNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.Name = name
			existing.Quantity = quantity
			existing.MinStock = minStock
			existing.Price = price
			existing.Batch = cell(row, 5)
			existing.Unit = cell(row, 6)
			existing.UpdatedAt = now
			if err := s.productRepo.Update(existing); err != nil {
				return nil, err
			}
			result.Updated++
		} else {
			product := &entity.Product{
				ID:              uuid.New().String(),
				Name:            name,
				InventoryNumber: invNumber,
				Quantity:        quantity,
				MinStock:        minStock,
				Price:           price,
				Batch:           cell(row, 5),
				Unit:            cell(row, 6),
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := s.productRepo.Create(product); err != nil {
				return nil, err
			}
			result.Inserted++
		}
		result.Total++
	}
	return result, nil
}

// Export serializa el catálogo completo como XLSX con cabecera resaltada.
func (s *Service) Export() ([]byte, error) {
	products, err := s.productRepo.List()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: crear estilo: %w", err)
	}
	for i, h := range headers {
		addr, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, addr, h); err != nil {
			return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("excel: aplicar estilo: %w", err)
	}

	for i, p := range products {
		values := []any{
			p.Name, p.InventoryNumber,
			p.Quantity.InexactFloat64(), p.MinStock.InexactFloat64(), p.Price.InexactFloat64(),
			p.Batch, p.Unit,
			stock.StatusFor(p.Quantity, p.MinStock),
		}
		for j, v := range values {
			addr, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, addr, v); err != nil {
				return nil, fmt.Errorf("excel: escribir fila: %w", err)
			}
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "H", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// parseDecimal admite celdas vacías (cero) y coma decimal.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}
