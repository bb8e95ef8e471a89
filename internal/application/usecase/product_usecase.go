package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/el-lector/libreria-api/internal/application/dto"
	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	"github.com/el-lector/libreria-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo de títulos. El precio del
// catálogo es solo una sugerencia al crear traslados; las líneas ya creadas
// nunca se recalculan.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo título del catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Title:     in.Title,
		Author:    in.Author,
		Publisher: in.Publisher,
		Price:     in.Price,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un título por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un título (campos opcionales). Cambiar el precio no afecta
// traslados existentes.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Author != nil {
		product.Author = *in.Author
	}
	if in.Publisher != nil {
		product.Publisher = *in.Publisher
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista títulos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Title:     p.Title,
		Author:    p.Author,
		Publisher: p.Publisher,
		Price:     p.Price,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
