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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para el catálogo.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create persiste un nuevo título. SKU duplicado -> domain.ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, title, author, publisher, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		product.ID, product.SKU, product.Title, product.Author, product.Publisher,
		product.Price, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un título por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, sku, title, author, publisher, price, active, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SKU, &p.Title, &p.Author, &p.Publisher, &p.Price, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un título existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET title = $2, author = $3, publisher = $4, price = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		product.ID, product.Title, product.Author, product.Publisher,
		product.Price, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista títulos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, sku, title, author, publisher, price, active, created_at, updated_at
		FROM products ORDER BY title LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Title, &p.Author, &p.Publisher, &p.Price, &p.Active,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
