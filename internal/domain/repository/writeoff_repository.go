package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// WriteOffActRepository puerto de persistencia para actas de baja.
type WriteOffActRepository interface {
	Create(act *entity.WriteOffAct) error
	GetByID(id string) (*entity.WriteOffAct, error)
	// List devuelve las actas ordenadas por fecha de acta y creación descendentes.
	List() ([]*entity.WriteOffAct, error)
	Delete(id string) error
}
