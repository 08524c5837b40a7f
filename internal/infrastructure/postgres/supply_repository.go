package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

const supplyColumns = `s.id, s.warehouse_id, s.item_id, s.amount, s.expected_at, s.note, s.status, s.overdue_notified_at, s.created_at, s.updated_at`

// SupplyRepo implementación del puerto SupplyRepository sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador de suministros. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// Create persiste un suministro nuevo.
func (r *SupplyRepo) Create(s *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, warehouse_id, item_id, amount, expected_at, note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.WarehouseID, s.ItemID, s.Amount, s.ExpectedAt, s.Note, s.Status,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// GetByID obtiene un suministro vivo por ID.
func (r *SupplyRepo) GetByID(id string) (*entity.Supply, error) {
	query := `
		SELECT ` + supplyColumns + `, COALESCE(i.name, '')
		FROM supplies s LEFT JOIN items i ON i.id = s.item_id
		WHERE s.id = $1 AND s.deleted_at IS NULL`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get supply: %w", err)
	}
	list, err := collectSupplies(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func supplySortColumn(sort string) string {
	switch sort {
	case "created_at", "updated_at", "amount", "status":
		return "s." + sort
	default:
		return "s.expected_at"
	}
}

// ListByWarehouse lista los suministros vivos de la bodega con item_name resuelto.
func (r *SupplyRepo) ListByWarehouse(warehouseID string, f repository.SupplyFilter) ([]*entity.Supply, error) {
	query := `
		SELECT ` + supplyColumns + `, COALESCE(i.name, '')
		FROM supplies s LEFT JOIN items i ON i.id = s.item_id
		WHERE s.warehouse_id = $1 AND s.deleted_at IS NULL`
	args := []any{warehouseID}
	if f.Status != "" && f.Status != "all" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	query += " ORDER BY " + supplySortColumn(f.Sort)
	if f.Desc {
		query += " DESC"
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	return collectSupplies(rows)
}

// MarkStatus fija el estado solo si el suministro sigue en waiting. El
// RowsAffected decide quién ganó: un duplicado concurrente pierde y no acredita.
func (r *SupplyRepo) MarkStatus(id, status string, now time.Time) (bool, error) {
	query := `
		UPDATE supplies SET status = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL AND status = 'waiting'`
	cmd, err := r.q.Exec(context.Background(), query, id, status, now)
	if err != nil {
		return false, fmt.Errorf("mark supply status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// MarkOverdueNotified fija el flag de vencido solo si estaba en NULL.
func (r *SupplyRepo) MarkOverdueNotified(id string, now time.Time) (bool, error) {
	query := `
		UPDATE supplies SET overdue_notified_at = $2
		WHERE id = $1 AND deleted_at IS NULL AND overdue_notified_at IS NULL`
	cmd, err := r.q.Exec(context.Background(), query, id, now)
	if err != nil {
		return false, fmt.Errorf("mark overdue notified: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// CountByStatus cuenta suministros vivos por estado en varias bodegas.
func (r *SupplyRepo) CountByStatus(warehouseIDs []string) (map[string]int, error) {
	out := make(map[string]int)
	if len(warehouseIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT status, COUNT(*) FROM supplies
		WHERE warehouse_id = ANY($1) AND deleted_at IS NULL
		GROUP BY status`
	rows, err := r.q.Query(context.Background(), query, warehouseIDs)
	if err != nil {
		return nil, fmt.Errorf("count supplies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan supply count: %w", err)
		}
		out[status] = count
	}
	return out, rows.Err()
}

// ListUpcoming devuelve los suministros en waiting por expected_at ascendente.
// limit <= 0 devuelve todos.
func (r *SupplyRepo) ListUpcoming(warehouseIDs []string, limit int) ([]*entity.Supply, error) {
	if len(warehouseIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + supplyColumns + `, COALESCE(i.name, '')
		FROM supplies s LEFT JOIN items i ON i.id = s.item_id
		WHERE s.warehouse_id = ANY($1) AND s.deleted_at IS NULL AND s.status = 'waiting'
		ORDER BY s.expected_at`
	args := []any{warehouseIDs}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list upcoming supplies: %w", err)
	}
	return collectSupplies(rows)
}

// SoftDeleteByWarehouse marca deleted_at en los suministros vivos de la bodega.
func (r *SupplyRepo) SoftDeleteByWarehouse(warehouseID string, now time.Time) error {
	query := `UPDATE supplies SET deleted_at = $2 WHERE warehouse_id = $1 AND deleted_at IS NULL`
	if _, err := r.q.Exec(context.Background(), query, warehouseID, now); err != nil {
		return fmt.Errorf("soft delete supplies: %w", err)
	}
	return nil
}

func collectSupplies(rows pgx.Rows) ([]*entity.Supply, error) {
	defer rows.Close()
	var list []*entity.Supply
	for rows.Next() {
		var s entity.Supply
		if err := rows.Scan(&s.ID, &s.WarehouseID, &s.ItemID, &s.Amount, &s.ExpectedAt,
			&s.Note, &s.Status, &s.OverdueNotifiedAt, &s.CreatedAt, &s.UpdatedAt, &s.ItemName); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
