package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	"github.com/el-lector/libreria-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, location_id, email, password_hash, name, role, status, created_at, updated_at`

// Create persiste un nuevo usuario. Email duplicado -> domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.LocationID, user.Email, user.PasswordHash,
		user.Name, user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy("id", id)
}

// FindByEmail busca un usuario por email.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.getBy("email", email)
}

func (r *UserRepo) getBy(column, value string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT `+userColumns+` FROM users WHERE %s = $1`, column)
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, value).Scan(
		&u.ID, &u.LocationID, &u.Email, &u.PasswordHash,
		&u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
