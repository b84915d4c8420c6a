// Package usecase contiene los casos de uso CRUD de la aplicación.
package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/stock"
)

// ProductUseCase casos de uso CRUD del catálogo. Quantity se modifica vía
// movimientos o vía update explícito (corrección manual).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto nuevo. El número de inventario es único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.InventoryNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByInventoryNumber(in.InventoryNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		InventoryNumber: in.InventoryNumber,
		Quantity:        in.Quantity,
		MinStock:        in.MinStock,
		Price:           in.Price,
		Batch:           in.Batch,
		Unit:            in.Unit,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// Update actualiza un producto; campos nil del request no se tocan.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Batch != nil {
		product.Batch = *in.Batch
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista el catálogo completo con estado derivado.
func (uc *ProductUseCase) List() (*dto.ProductListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{Products: items}, nil
}

// Delete elimina un producto por ID. El historial de movimientos se conserva.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// ToProductResponse mapea la entidad al DTO, derivando el estado de stock.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		InventoryNumber: p.InventoryNumber,
		Quantity:        p.Quantity,
		MinStock:        p.MinStock,
		Price:           p.Price,
		Batch:           p.Batch,
		Unit:            p.Unit,
		Status:          stock.StatusFor(p.Quantity, p.MinStock),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
