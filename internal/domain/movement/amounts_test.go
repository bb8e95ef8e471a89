package movement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	"github.com/el-lector/libreria-api/internal/domain/movement"
)

// TestComputeItems_TotalesLinea verifica el cálculo básico: cada línea vale
// cantidad * precio unitario y el total del traslado es la suma de líneas.
func TestComputeItems_TotalesLinea(t *testing.T) {
	items, total, err := movement.ComputeItems([]movement.ItemInput{
		{ProductID: "libro-a", Quantity: 5, UnitPrice: decimal.NewFromFloat(18.00)},
		{ProductID: "libro-b", Quantity: 2, UnitPrice: decimal.NewFromFloat(7.25)},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.True(t, items[0].TotalPrice.Equal(decimal.NewFromFloat(90.00)),
		"5 x 18.00 debe dar 90.00, dio %s", items[0].TotalPrice)
	assert.True(t, items[1].TotalPrice.Equal(decimal.NewFromFloat(14.50)),
		"2 x 7.25 debe dar 14.50, dio %s", items[1].TotalPrice)
	assert.True(t, total.Equal(decimal.NewFromFloat(104.50)),
		"el total debe ser la suma de las líneas")
}

// TestComputeItems_RedondeoMonetario verifica el redondeo a 2 decimales por línea.
func TestComputeItems_RedondeoMonetario(t *testing.T) {
	items, total, err := movement.ComputeItems([]movement.ItemInput{
		{ProductID: "libro-a", Quantity: 3, UnitPrice: decimal.NewFromFloat(9.999)},
	})
	require.NoError(t, err)
	// 3 * 9.999 = 29.997 -> 30.00
	assert.Equal(t, "30", items[0].TotalPrice.String())
	assert.Equal(t, "30", total.String())
}

func TestComputeItems_ListaVacia(t *testing.T) {
	_, _, err := movement.ComputeItems(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyItems, "una lista vacía no es un traslado válido")
}

func TestComputeItems_LineasInvalidas(t *testing.T) {
	cases := []struct {
		name  string
		input movement.ItemInput
	}{
		{"cantidad cero", movement.ItemInput{ProductID: "p", Quantity: 0, UnitPrice: decimal.NewFromInt(10)}},
		{"cantidad negativa", movement.ItemInput{ProductID: "p", Quantity: -3, UnitPrice: decimal.NewFromInt(10)}},
		{"precio negativo", movement.ItemInput{ProductID: "p", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}},
		{"sin producto", movement.ItemInput{ProductID: "", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := movement.ComputeItems([]movement.ItemInput{tc.input})
			assert.ErrorIs(t, err, domain.ErrInvalidItem)
		})
	}
}

// TestComputeItems_PrecioCeroEsValido: el precio unitario puede ser 0 (donaciones,
// material promocional); solo el negativo es inválido.
func TestComputeItems_PrecioCeroEsValido(t *testing.T) {
	items, total, err := movement.ComputeItems([]movement.ItemInput{
		{ProductID: "promo", Quantity: 10, UnitPrice: decimal.Zero},
	})
	require.NoError(t, err)
	assert.True(t, items[0].TotalPrice.IsZero())
	assert.True(t, total.IsZero())
}

func TestCheckReconciliation_Cuadra(t *testing.T) {
	m := &entity.Movement{TotalAmount: decimal.NewFromFloat(104.50)}
	items := []*entity.MovementItem{
		{TotalPrice: decimal.NewFromFloat(90.00)},
		{TotalPrice: decimal.NewFromFloat(14.50)},
	}
	assert.NoError(t, movement.CheckReconciliation(m, items))
}

// TestCheckReconciliation_Descuadre: un total guardado que no coincide con la
// suma de líneas es corrupción del ledger y debe reportarse, nunca corregirse.
func TestCheckReconciliation_Descuadre(t *testing.T) {
	m := &entity.Movement{TotalAmount: decimal.NewFromFloat(100.00)}
	items := []*entity.MovementItem{
		{TotalPrice: decimal.NewFromFloat(90.00)},
	}
	assert.ErrorIs(t, movement.CheckReconciliation(m, items), domain.ErrReconciliationMismatch)
}
