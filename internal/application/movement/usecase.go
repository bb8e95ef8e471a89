package movement

import (
	"context"
	"errors"

	"github.com/el-lector/libreria-api/internal/application/dto"
	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	dommovement "github.com/el-lector/libreria-api/internal/domain/movement"
	"github.com/el-lector/libreria-api/internal/domain/repository"
	"github.com/el-lector/libreria-api/pkg/logger"
)

// Roles de consulta al listar traslados: cada lado ve lo que envió o lo que espera.
const (
	RoleSource      = "source"
	RoleDestination = "destination"
)

// MovementUseCase orquesta el ciclo de vida de los traslados: creación
// atómica con reconciliación de montos, listados por rol y transiciones
// confirm/claim con la regla de autorización del destino.
//
// Es la única capa que traduce errores de repositorio y dominio hacia el
// exterior; ningún error crudo de almacenamiento llega a los handlers.
type MovementUseCase struct {
	txRunner     TxRunner
	movRepo      repository.MovementRepository // lecturas fuera de transacción
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
	log          *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		movRepo:      movRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		log:          log,
	}
}

// List lista los traslados donde el local actúa como origen o destino,
// opcionalmente filtrados por estado, de más reciente a más antiguo.
func (uc *MovementUseCase) List(ctx context.Context, locationID, role, status string, limit, offset int) (*dto.MovementListResponse, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.MovementFilter{Status: status}
	switch role {
	case RoleSource:
		filter.SourceID = locationID
	case RoleDestination:
		filter.DestinationID = locationID
	default:
		return nil, domain.ErrInvalidInput
	}
	if status != "" {
		switch status {
		case entity.MovementStatusPending, entity.MovementStatusConfirmed, entity.MovementStatusClaimed:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	list, err := uc.movRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m, nil))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID obtiene un traslado completo con sus líneas y verifica en lectura
// que el total guardado cuadre con la suma de líneas. Un descuadre indica
// corrupción del ledger: se registra y se marca en la respuesta, nunca se
// corrige el dato guardado.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.movRepo.GetItemsByMovementID(id)
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(m, items)
	if err := dommovement.CheckReconciliation(m, items); err != nil {
		if errors.Is(err, domain.ErrReconciliationMismatch) {
			uc.log.Warn().
				Str("movement_id", m.ID).
				Str("movement_number", m.Number).
				Str("total_amount", m.TotalAmount.String()).
				Msg("descuadre entre el total del traslado y la suma de sus líneas")
			resp.ReconciliationWarning = domain.ErrReconciliationMismatch.Error()
		} else {
			return nil, err
		}
	}
	return resp, nil
}

func toMovementResponse(m *entity.Movement, items []*entity.MovementItem) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:            m.ID,
		Number:        m.Number,
		SourceID:      m.SourceID,
		DestinationID: m.DestinationID,
		RecipientName: m.RecipientName,
		TotalAmount:   m.TotalAmount,
		Status:        m.Status,
		Notes:         m.Notes,
		ClaimMessage:  m.ClaimMessage,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		ConfirmedBy:   m.ConfirmedBy,
		ConfirmedAt:   m.ConfirmedAt,
		ClaimedBy:     m.ClaimedBy,
		ClaimedAt:     m.ClaimedAt,
		UpdatedAt:     m.UpdatedAt,
		ItemCount:     m.ItemCount,
		TotalQuantity: m.TotalQuantity,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.MovementItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return resp
}
