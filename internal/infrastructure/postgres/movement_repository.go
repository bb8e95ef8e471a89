package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	"github.com/el-lector/libreria-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de traslados sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste la cabecera del traslado. El número de traslado tiene
// constraint único: una colisión se reporta como domain.ErrDuplicate para que
// el caso de uso regenere y reintente.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, movement_number, source_location_id, destination_location_id,
			recipient_name, total_amount, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Number, m.SourceID, m.DestinationID,
		m.RecipientName, m.TotalAmount, m.Status, m.Notes,
		m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del traslado.
func (r *MovementRepo) CreateItem(item *entity.MovementItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movement_items (id, movement_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.MovementID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert movement item: %w", err)
	}
	return nil
}

const movementColumns = `id, movement_number, source_location_id, destination_location_id,
	recipient_name, total_amount, status, notes, claim_message,
	created_by, created_at, confirmed_by, confirmed_at, claimed_by, claimed_at, updated_at`

// GetByID obtiene la cabecera de un traslado por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// GetItemsByMovementID obtiene todas las líneas de un traslado.
func (r *MovementRepo) GetItemsByMovementID(movementID string) ([]*entity.MovementItem, error) {
	query := `
		SELECT id, movement_id, product_id, quantity, unit_price, total_price
		FROM movement_items WHERE movement_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement items: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementItem
	for rows.Next() {
		var it entity.MovementItem
		if err := rows.Scan(&it.ID, &it.MovementID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan movement item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista cabeceras con agregados de líneas (conteo y cantidad total),
// sin cuerpos de líneas, de más reciente a más antigua.
func (r *MovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT m.id, m.movement_number, m.source_location_id, m.destination_location_id,
		       m.recipient_name, m.total_amount, m.status, m.notes, m.claim_message,
		       m.created_by, m.created_at, m.confirmed_by, m.confirmed_at,
		       m.claimed_by, m.claimed_at, m.updated_at,
		       COUNT(i.id), COALESCE(SUM(i.quantity), 0)
		FROM movements m
		LEFT JOIN movement_items i ON i.movement_id = m.id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.SourceID != "" {
		query += fmt.Sprintf(" AND m.source_location_id = $%d", pos)
		args = append(args, filter.SourceID)
		pos++
	}
	if filter.DestinationID != "" {
		query += fmt.Sprintf(" AND m.destination_location_id = $%d", pos)
		args = append(args, filter.DestinationID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND m.status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	query += fmt.Sprintf(" GROUP BY m.id ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var claimMessage, confirmedBy, claimedBy *string
		if err := rows.Scan(
			&m.ID, &m.Number, &m.SourceID, &m.DestinationID,
			&m.RecipientName, &m.TotalAmount, &m.Status, &m.Notes, &claimMessage,
			&m.CreatedBy, &m.CreatedAt, &confirmedBy, &m.ConfirmedAt,
			&claimedBy, &m.ClaimedAt, &m.UpdatedAt,
			&m.ItemCount, &m.TotalQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.ClaimMessage = derefStr(claimMessage)
		m.ConfirmedBy = derefStr(confirmedBy)
		m.ClaimedBy = derefStr(claimedBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdateStatus aplica la transición con compare-and-swap: el UPDATE solo pega
// si el estado guardado sigue siendo upd.FromStatus. Devuelve filas afectadas;
// 0 significa que el traslado no existe o que otro actor ganó la carrera
// (el caller relee para distinguir).
func (r *MovementRepo) UpdateStatus(id string, upd repository.StatusUpdate) (int64, error) {
	var query string
	var args []any
	switch upd.ToStatus {
	case entity.MovementStatusConfirmed:
		query = `
			UPDATE movements
			SET status = $3, confirmed_by = $4, confirmed_at = $5, updated_at = $5
			WHERE id = $1 AND status = $2`
		args = []any{id, upd.FromStatus, upd.ToStatus, upd.ActorID, upd.At}
	case entity.MovementStatusClaimed:
		query = `
			UPDATE movements
			SET status = $3, claimed_by = $4, claimed_at = $5, updated_at = $5, claim_message = $6
			WHERE id = $1 AND status = $2`
		args = []any{id, upd.FromStatus, upd.ToStatus, upd.ActorID, upd.At, upd.ClaimMessage}
	default:
		return 0, domain.ErrInvalidInput
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return 0, fmt.Errorf("update movement status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var claimMessage, confirmedBy, claimedBy *string
	err := row.Scan(
		&m.ID, &m.Number, &m.SourceID, &m.DestinationID,
		&m.RecipientName, &m.TotalAmount, &m.Status, &m.Notes, &claimMessage,
		&m.CreatedBy, &m.CreatedAt, &confirmedBy, &m.ConfirmedAt,
		&claimedBy, &m.ClaimedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.ClaimMessage = derefStr(claimMessage)
	m.ConfirmedBy = derefStr(confirmedBy)
	m.ClaimedBy = derefStr(claimedBy)
	return &m, nil
}
