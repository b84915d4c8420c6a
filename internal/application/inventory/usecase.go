// Package inventory contiene el motor transaccional de movimientos de stock.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas de stock de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movRepo repository.MovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// Register valida el movimiento, abre una transacción, bloquea la fila del
// producto y aplica la entrada o salida. La cantidad del request viene sin
// signo; el movimiento se guarda con signo según el tipo (entrada positiva,
// salida negativa). Una salida mayor al stock actual devuelve
// ErrInsufficientStock y no toca nada.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.MovementType != entity.MovementIncoming && in.MovementType != entity.MovementOutgoing {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		ProductName: product.Name,
		Type:        in.MovementType,
		UserName:    in.UserName,
		Reason:      in.Reason,
		Supplier:    in.Supplier,
		Notes:       in.Notes,
		CreatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		// Bloquea la fila del producto para evitar salidas concurrentes sobre el mismo stock
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		var newQty decimal.Decimal
		if in.MovementType == entity.MovementIncoming {
			newQty = locked.Quantity.Add(in.Quantity)
			mov.Quantity = in.Quantity
		} else {
			if locked.Quantity.LessThan(in.Quantity) {
				return domain.ErrInsufficientStock
			}
			newQty = locked.Quantity.Sub(in.Quantity)
			mov.Quantity = in.Quantity.Neg()
		}

		if err := productRepo.UpdateQuantity(in.ProductID, newQty); err != nil {
			return err
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// List devuelve el historial reciente, fecha descendente.
func (uc *RegisterMovementUseCase) List(limit int) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{Movements: items}, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		ProductName:  m.ProductName,
		MovementType: m.Type,
		Quantity:     m.Quantity,
		UserName:     m.UserName,
	}
}
