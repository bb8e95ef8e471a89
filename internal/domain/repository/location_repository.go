package repository

import "github.com/el-lector/libreria-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para locales (DIP).
// GetBySlug es el registro de locales: resuelve el código corto que usan los
// clientes de la API al ID interno estable; el mapeo es exacto y 1:1.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetBySlug(slug string) (*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
}
