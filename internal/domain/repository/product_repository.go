package repository

import "github.com/el-lector/libreria-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
}
