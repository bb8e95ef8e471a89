package movement

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/el-lector/libreria-api/internal/application/dto"
	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	dommovement "github.com/el-lector/libreria-api/internal/domain/movement"
	"github.com/el-lector/libreria-api/internal/domain/repository"
)

// Intentos máximos de creación ante colisión del número de traslado.
const maxNumberAttempts = 3

// Create valida el traslado, calcula totales con el motor de reconciliación
// y persiste cabecera + líneas en una sola transacción. Si el número de
// traslado colisiona (constraint único), regenera y reintenta la transacción
// completa.
func (uc *MovementUseCase) Create(ctx context.Context, userID string, in dto.CreateMovementRequest) (*dto.CreateMovementResponse, error) {
	if in.SourceID == "" || in.DestinationID == "" || in.RecipientName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceID == in.DestinationID {
		return nil, domain.ErrSameLocation
	}

	// Validar que origen y destino existan (lecturas fuera de la tx; los
	// locales son datos semilla inmutables una vez referenciados).
	source, err := uc.locationRepo.GetByID(in.SourceID)
	if err != nil {
		return nil, err
	}
	destination, err := uc.locationRepo.GetByID(in.DestinationID)
	if err != nil {
		return nil, err
	}
	if source == nil || destination == nil {
		return nil, domain.ErrNotFound
	}

	// Armar las líneas: si no viene precio unitario, se sugiere el precio
	// actual del catálogo y queda congelado en la línea (el catálogo no se
	// vuelve a leer después de crear el traslado).
	inputs := make([]dommovement.ItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		input := dommovement.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.UnitPrice != nil {
			input.UnitPrice = *item.UnitPrice
		} else {
			product, err := uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			input.UnitPrice = product.Price
		}
		inputs = append(inputs, input)
	}

	items, total, err := dommovement.ComputeItems(inputs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m := &entity.Movement{
		ID:            uuid.New().String(),
		SourceID:      in.SourceID,
		DestinationID: in.DestinationID,
		RecipientName: in.RecipientName,
		TotalAmount:   total,
		Status:        entity.MovementStatusPending,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Reintento ante colisión de número: el INSERT fallido aborta la tx en
	// PostgreSQL, así que cada intento repite la transacción completa.
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		m.Number = newMovementNumber()
		err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository) error {
			if err := movRepo.Create(m); err != nil {
				return err
			}
			for _, item := range items {
				item.MovementID = m.ID
				if err := movRepo.CreateItem(item); err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	return &dto.CreateMovementResponse{
		MovementID:     m.ID,
		MovementNumber: m.Number,
	}, nil
}

// newMovementNumber genera un consecutivo legible MOV-XXXXXXXX. La unicidad
// real la garantiza el constraint de la tabla; ante colisión se regenera.
func newMovementNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "MOV-" + strings.ToUpper(raw[:8])
}
