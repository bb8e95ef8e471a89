package repository

import "github.com/el-lector/libreria-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
