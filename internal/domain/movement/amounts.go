package movement

import (
	"github.com/shopspring/decimal"

	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
)

// ItemInput es una línea propuesta para un traslado, antes de calcular totales.
type ItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// ComputeItems calcula el total de cada línea (Quantity * UnitPrice, redondeo
// monetario a 2 decimales) y el total del traslado como suma de líneas.
// Servicio de dominio puro, sin efectos secundarios: se usa al crear el
// traslado y como verificación de consistencia en lectura.
func ComputeItems(inputs []ItemInput) ([]*entity.MovementItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, domain.ErrEmptyItems
	}
	items := make([]*entity.MovementItem, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		if in.ProductID == "" || in.Quantity <= 0 || in.UnitPrice.LessThan(decimal.Zero) {
			return nil, decimal.Zero, domain.ErrInvalidItem
		}
		lineTotal := decimal.NewFromInt(int64(in.Quantity)).Mul(in.UnitPrice).Round(2)
		items = append(items, &entity.MovementItem{
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			UnitPrice:  in.UnitPrice,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return items, total.Round(2), nil
}

// CheckReconciliation verifica en lectura que el total guardado del traslado
// cuadre con la suma de sus líneas. Un descuadre se reporta como
// ErrReconciliationMismatch; nunca se corrige en silencio.
func CheckReconciliation(m *entity.Movement, items []*entity.MovementItem) error {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}
	if !sum.Round(2).Equal(m.TotalAmount.Round(2)) {
		return domain.ErrReconciliationMismatch
	}
	return nil
}
