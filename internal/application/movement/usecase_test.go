package movement_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/el-lector/libreria-api/internal/application/dto"
	appmovement "github.com/el-lector/libreria-api/internal/application/movement"
	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	"github.com/el-lector/libreria-api/internal/domain/repository"
	"github.com/el-lector/libreria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de persistencia. Implementan la misma
// semántica que el adaptador PostgreSQL: UpdateStatus es compare-and-swap
// (0 filas si el estado guardado no coincide) y movement_number es único.
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements map[string]*entity.Movement
	items     map[string][]*entity.MovementItem
	numbers   map[string]bool

	duplicateOnce bool   // fuerza una colisión de número en el primer Create
	beforeUpdate  func() // hook para simular carreras entre lectura y escritura
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{
		movements: make(map[string]*entity.Movement),
		items:     make(map[string][]*entity.MovementItem),
		numbers:   make(map[string]bool),
	}
}

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	if f.duplicateOnce {
		f.duplicateOnce = false
		return domain.ErrDuplicate
	}
	if f.numbers[m.Number] {
		return domain.ErrDuplicate
	}
	cp := *m
	f.movements[m.ID] = &cp
	f.numbers[m.Number] = true
	return nil
}

func (f *fakeMovementRepo) CreateItem(item *entity.MovementItem) error {
	cp := *item
	f.items[item.MovementID] = append(f.items[item.MovementID], &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := f.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMovementRepo) GetItemsByMovementID(movementID string) ([]*entity.MovementItem, error) {
	return f.items[movementID], nil
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range f.movements {
		if filter.SourceID != "" && m.SourceID != filter.SourceID {
			continue
		}
		if filter.DestinationID != "" && m.DestinationID != filter.DestinationID {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		cp := *m
		cp.ItemCount = len(f.items[m.ID])
		for _, it := range f.items[m.ID] {
			cp.TotalQuantity += it.Quantity
		}
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (f *fakeMovementRepo) UpdateStatus(id string, upd repository.StatusUpdate) (int64, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	m, ok := f.movements[id]
	if !ok || m.Status != upd.FromStatus {
		return 0, nil
	}
	m.Status = upd.ToStatus
	m.UpdatedAt = upd.At
	switch upd.ToStatus {
	case entity.MovementStatusConfirmed:
		m.ConfirmedBy = upd.ActorID
		at := upd.At
		m.ConfirmedAt = &at
	case entity.MovementStatusClaimed:
		m.ClaimedBy = upd.ActorID
		at := upd.At
		m.ClaimedAt = &at
		m.ClaimMessage = upd.ClaimMessage
	}
	return 1, nil
}

type fakeTxRunner struct {
	repo repository.MovementRepository
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(movRepo repository.MovementRepository) error) error {
	return fn(f.repo)
}

type fakeLocationRepo struct {
	byID map[string]*entity.Location
}

func (f *fakeLocationRepo) Create(l *entity.Location) error { f.byID[l.ID] = l; return nil }
func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	return f.byID[id], nil
}
func (f *fakeLocationRepo) GetBySlug(slug string) (*entity.Location, error) {
	for _, l := range f.byID {
		if l.Slug == slug {
			return l, nil
		}
	}
	return nil, nil
}
func (f *fakeLocationRepo) List(limit, offset int) ([]*entity.Location, error) { return nil, nil }

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.byID[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.byID[id], nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error                    { return nil }
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un depósito, una sucursal y un producto de catálogo.
// ──────────────────────────────────────────────────────────────────────────────

const (
	depositoID  = "00000000-0000-0000-0000-00000000000a"
	sucursalID  = "00000000-0000-0000-0000-00000000000b"
	otraID      = "00000000-0000-0000-0000-00000000000c"
	productoA   = "00000000-0000-0000-0000-000000000101"
	usuarioID   = "00000000-0000-0000-0000-000000000201"
	bodegueroID = "00000000-0000-0000-0000-000000000202"
)

type fixture struct {
	uc      *appmovement.MovementUseCase
	movRepo *fakeMovementRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	movRepo := newFakeMovementRepo()
	locRepo := &fakeLocationRepo{byID: map[string]*entity.Location{
		depositoID: {ID: depositoID, Name: "Depósito Central", Slug: "deposito", Kind: entity.LocationKindDeposito},
		sucursalID: {ID: sucursalID, Name: "Sucursal Centro", Slug: "branch-1", Kind: entity.LocationKindLibreria},
		otraID:     {ID: otraID, Name: "Sucursal Norte", Slug: "branch-2", Kind: entity.LocationKindLibreria},
	}}
	prodRepo := &fakeProductRepo{byID: map[string]*entity.Product{
		productoA: {ID: productoA, SKU: "978-1", Title: "Cien años de soledad", Price: decimal.NewFromFloat(18.00), Active: true},
	}}
	uc := appmovement.NewMovementUseCase(&fakeTxRunner{repo: movRepo}, movRepo, locRepo, prodRepo, logger.Nop())
	return &fixture{uc: uc, movRepo: movRepo}
}

func price(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func (fx *fixture) createBasic(t *testing.T) *dto.CreateMovementResponse {
	t.Helper()
	out, err := fx.uc.Create(context.Background(), usuarioID, dto.CreateMovementRequest{
		SourceID:      depositoID,
		DestinationID: sucursalID,
		RecipientName: "María Gómez",
		Notes:         "reposición semanal",
		Items: []dto.MovementItemRequest{
			{ProductID: productoA, Quantity: 5, UnitPrice: price(18.00)},
		},
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

// Escenario base: 5 unidades a 18.00 dan total 90.00 y el traslado nace pending.
func TestCreate_TotalYEstadoInicial(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)

	require.NotEmpty(t, out.MovementID)
	assert.Regexp(t, `^MOV-[0-9A-F]{8}$`, out.MovementNumber)

	got, err := fx.uc.GetByID(context.Background(), out.MovementID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusPending, got.Status)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromFloat(90.00)),
		"5 x 18.00 debe dar 90.00, dio %s", got.TotalAmount)
}

// Round-trip: lo que se crea es exactamente lo que se lee.
func TestCreate_RoundTrip(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)

	got, err := fx.uc.GetByID(context.Background(), out.MovementID)
	require.NoError(t, err)

	assert.Equal(t, depositoID, got.SourceID)
	assert.Equal(t, sucursalID, got.DestinationID)
	assert.Equal(t, "María Gómez", got.RecipientName)
	assert.Equal(t, "reposición semanal", got.Notes)
	assert.Equal(t, usuarioID, got.CreatedBy)
	assert.Empty(t, got.ReconciliationWarning)
	require.Len(t, got.Items, 1)
	assert.Equal(t, productoA, got.Items[0].ProductID)
	assert.Equal(t, 5, got.Items[0].Quantity)
	assert.True(t, got.Items[0].TotalPrice.Equal(decimal.NewFromFloat(90.00)))
}

func TestCreate_SinLineas(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.uc.Create(context.Background(), usuarioID, dto.CreateMovementRequest{
		SourceID:      depositoID,
		DestinationID: sucursalID,
		RecipientName: "María Gómez",
		Items:         nil,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)
}

func TestCreate_OrigenIgualDestino(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.uc.Create(context.Background(), usuarioID, dto.CreateMovementRequest{
		SourceID:      depositoID,
		DestinationID: depositoID,
		RecipientName: "María Gómez",
		Items: []dto.MovementItemRequest{
			{ProductID: productoA, Quantity: 1, UnitPrice: price(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrSameLocation)
}

func TestCreate_LocalInexistente(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.uc.Create(context.Background(), usuarioID, dto.CreateMovementRequest{
		SourceID:      depositoID,
		DestinationID: "00000000-0000-0000-0000-0000000000ff",
		RecipientName: "María Gómez",
		Items: []dto.MovementItemRequest{
			{ProductID: productoA, Quantity: 1, UnitPrice: price(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Sin precio unitario explícito se congela el precio actual del catálogo.
func TestCreate_SugierePrecioDeCatalogo(t *testing.T) {
	fx := newFixture(t)
	out, err := fx.uc.Create(context.Background(), usuarioID, dto.CreateMovementRequest{
		SourceID:      depositoID,
		DestinationID: sucursalID,
		RecipientName: "María Gómez",
		Items: []dto.MovementItemRequest{
			{ProductID: productoA, Quantity: 2}, // UnitPrice nil
		},
	})
	require.NoError(t, err)
	got, err := fx.uc.GetByID(context.Background(), out.MovementID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromFloat(36.00)),
		"2 x precio de catálogo (18.00) debe dar 36.00")
}

// Una colisión del número de traslado regenera y reintenta la transacción.
func TestCreate_ReintentaNumeroDuplicado(t *testing.T) {
	fx := newFixture(t)
	fx.movRepo.duplicateOnce = true
	out := fx.createBasic(t)
	assert.NotEmpty(t, out.MovementNumber)
}

// Los traslados depósito -> depósito se permiten; solo origen == destino se rechaza.
func TestCreate_EntreDepositosPermitido(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.uc.Create(context.Background(), usuarioID, dto.CreateMovementRequest{
		SourceID:      sucursalID,
		DestinationID: otraID,
		RecipientName: "Pedro Ruiz",
		Items: []dto.MovementItemRequest{
			{ProductID: productoA, Quantity: 1, UnitPrice: price(10)},
		},
	})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones confirm / claim
// ──────────────────────────────────────────────────────────────────────────────

// El destino confirma: estado, actor y timestamp de auditoría quedan poblados.
func TestConfirm_DestinoConfirma(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)

	err := fx.uc.Confirm(context.Background(), out.MovementID, sucursalID, bodegueroID)
	require.NoError(t, err)

	got, err := fx.uc.GetByID(context.Background(), out.MovementID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusConfirmed, got.Status)
	assert.Equal(t, bodegueroID, got.ConfirmedBy)
	require.NotNil(t, got.ConfirmedAt)
	assert.WithinDuration(t, time.Now(), *got.ConfirmedAt, 5*time.Second)
}

// El origen intenta confirmar su propio despacho: no autorizado.
func TestConfirm_OrigenNoAutorizado(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)

	err := fx.uc.Confirm(context.Background(), out.MovementID, depositoID, usuarioID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedLocation)

	got, _ := fx.uc.GetByID(context.Background(), out.MovementID)
	assert.Equal(t, entity.MovementStatusPending, got.Status, "el estado no debe cambiar")
}

// Reconfirmar después de confirmado devuelve la señal de idempotencia.
func TestConfirm_YaFinalizado(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)

	require.NoError(t, fx.uc.Confirm(context.Background(), out.MovementID, sucursalID, bodegueroID))
	err := fx.uc.Confirm(context.Background(), out.MovementID, sucursalID, bodegueroID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

func TestConfirm_NoExiste(t *testing.T) {
	fx := newFixture(t)
	err := fx.uc.Confirm(context.Background(), "00000000-0000-0000-0000-0000000000ee", sucursalID, bodegueroID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClaim_ConMensaje(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)

	err := fx.uc.Claim(context.Background(), out.MovementID, sucursalID, bodegueroID, "faltaron 2 ejemplares")
	require.NoError(t, err)

	got, err := fx.uc.GetByID(context.Background(), out.MovementID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusClaimed, got.Status)
	assert.Equal(t, "faltaron 2 ejemplares", got.ClaimMessage)
	assert.Equal(t, bodegueroID, got.ClaimedBy)
	require.NotNil(t, got.ClaimedAt)
}

func TestClaim_SinMensaje(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)
	err := fx.uc.Claim(context.Background(), out.MovementID, sucursalID, bodegueroID, "")
	assert.ErrorIs(t, err, domain.ErrEmptyClaimMessage)
}

func TestClaim_TerceroNoAutorizado(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)
	err := fx.uc.Claim(context.Background(), out.MovementID, otraID, bodegueroID, "mensaje")
	assert.ErrorIs(t, err, domain.ErrUnauthorizedLocation)
}

// Carrera confirm vs claim: el perdedor del compare-and-swap no pisa al
// ganador; recibe el error de finalizado tras releer.
func TestTransition_CarreraConfirmVsClaim(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)

	// Simular que un claim concurrente gana entre la lectura y el UPDATE
	// condicional del confirm.
	interleaved := false
	fx.movRepo.beforeUpdate = func() {
		if interleaved {
			return
		}
		interleaved = true
		m := fx.movRepo.movements[out.MovementID]
		m.Status = entity.MovementStatusClaimed
		m.ClaimMessage = "caja dañada"
		at := time.Now()
		m.ClaimedAt = &at
		m.ClaimedBy = bodegueroID
	}

	err := fx.uc.Confirm(context.Background(), out.MovementID, sucursalID, bodegueroID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)

	got, _ := fx.uc.GetByID(context.Background(), out.MovementID)
	assert.Equal(t, entity.MovementStatusClaimed, got.Status,
		"el estado final debe ser el del ganador, sin mezcla de efectos")
	assert.Equal(t, "caja dañada", got.ClaimMessage)
	assert.Empty(t, got.ConfirmedBy, "el perdedor no debe dejar rastro de auditoría")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados y reconciliación en lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestList_PorRol(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)

	// El destino ve el traslado pendiente que espera.
	asDest, err := fx.uc.List(context.Background(), sucursalID, appmovement.RoleDestination, entity.MovementStatusPending, 20, 0)
	require.NoError(t, err)
	require.Len(t, asDest.Items, 1)
	assert.Equal(t, out.MovementID, asDest.Items[0].ID)
	assert.Equal(t, 1, asDest.Items[0].ItemCount)
	assert.Equal(t, 5, asDest.Items[0].TotalQuantity)

	// El origen lo ve como enviado; un tercero no ve nada.
	asSource, err := fx.uc.List(context.Background(), depositoID, appmovement.RoleSource, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, asSource.Items, 1)

	asOther, err := fx.uc.List(context.Background(), otraID, appmovement.RoleDestination, "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, asOther.Items)
}

func TestList_RolInvalido(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.uc.List(context.Background(), sucursalID, "auditor", "", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un total corrupto en el ledger se reporta como advertencia, sin corregirse.
func TestGetByID_DescuadreReportado(t *testing.T) {
	fx := newFixture(t)
	out := fx.createBasic(t)

	fx.movRepo.movements[out.MovementID].TotalAmount = decimal.NewFromFloat(999.99)

	got, err := fx.uc.GetByID(context.Background(), out.MovementID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ReconciliationWarning)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromFloat(999.99)),
		"el dato guardado se reporta tal cual, nunca se corrige en silencio")
}
