package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// MovementRepository puerto de persistencia para el historial de movimientos.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListRecent devuelve los últimos movimientos ordenados por fecha descendente.
	ListRecent(limit int) ([]*entity.Movement, error)
}
