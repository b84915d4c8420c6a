package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
// GetByID y GetByUsername devuelven (nil, nil) cuando no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List() ([]*entity.User, error)
	Delete(id string) error
}
