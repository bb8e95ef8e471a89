package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/el-lector/libreria-api/internal/application/dto"
	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	"github.com/el-lector/libreria-api/internal/domain/repository"
)

// LocationUseCase casos de uso para el registro de locales (depósitos y
// librerías). Los locales no se eliminan: son referenciados por traslados
// históricos.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create registra un nuevo local. El slug es único en todo el registro.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	existing, _ := uc.repo.GetBySlug(in.Slug)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Kind != entity.LocationKindDeposito && in.Kind != entity.LocationKindLibreria {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	location := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Slug:      in.Slug,
		Kind:      in.Kind,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene un local por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// GetBySlug resuelve el código corto de un local a su registro completo.
func (uc *LocationUseCase) GetBySlug(slug string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// List lista locales con paginación.
func (uc *LocationUseCase) List(limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Slug:      l.Slug,
		Kind:      l.Kind,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
