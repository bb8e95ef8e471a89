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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	pool *pgxpool.Pool
}

// NewLocationRepository construye el adaptador de persistencia para locales.
func NewLocationRepository(pool *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{pool: pool}
}

// Create persiste un nuevo local. Slug duplicado -> domain.ErrDuplicate.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, slug, kind, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		location.ID, location.Name, location.Slug, location.Kind, location.Address,
		location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene un local por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.getBy("id", id)
}

// GetBySlug resuelve el código corto de un local a la entidad completa.
// El slug tiene constraint único: la resolución es exacta y 1:1.
func (r *LocationRepo) GetBySlug(slug string) (*entity.Location, error) {
	return r.getBy("slug", slug)
}

func (r *LocationRepo) getBy(column, value string) (*entity.Location, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, kind, address, created_at, updated_at
		FROM locations WHERE %s = $1`, column)
	var l entity.Location
	err := r.pool.QueryRow(context.Background(), query, value).Scan(
		&l.ID, &l.Name, &l.Slug, &l.Kind, &l.Address, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List lista locales con paginación.
func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, name, slug, kind, address, created_at, updated_at
		FROM locations ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Slug, &l.Kind, &l.Address, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
