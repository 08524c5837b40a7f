package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementación del ledger de historial sobre PostgreSQL. Solo
// inserta y lee: no existe UPDATE de entradas, el cascade de borrado marca
// deleted_at sin tocar el contenido.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador de historial. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Append persiste una entrada del ledger.
func (r *HistoryRepo) Append(e *entity.HistoryEntry) error {
	query := `
		INSERT INTO history (id, item_id, warehouse_id, type, amount, note, ts, by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ItemID, e.WarehouseID, e.Type, e.Amount, e.Note, e.TS, e.ByUserID,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListByItem devuelve las entradas de un item, más recientes primero.
func (r *HistoryRepo) ListByItem(itemID string, limit int) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, item_id, warehouse_id, type, amount, note, ts, by_user_id
		FROM history WHERE item_id = $1 AND deleted_at IS NULL
		ORDER BY ts DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.WarehouseID, &e.Type, &e.Amount,
			&e.Note, &e.TS, &e.ByUserID); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListByWarehouse devuelve las entradas de la bodega con item_name resuelto.
func (r *HistoryRepo) ListByWarehouse(warehouseID string, limit int) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT h.id, h.item_id, h.warehouse_id, h.type, h.amount, h.note, h.ts, h.by_user_id,
		       COALESCE(i.name, '')
		FROM history h
		LEFT JOIN items i ON i.id = h.item_id
		WHERE h.warehouse_id = $1 AND h.deleted_at IS NULL
		ORDER BY h.ts DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history by warehouse: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.WarehouseID, &e.Type, &e.Amount,
			&e.Note, &e.TS, &e.ByUserID, &e.ItemName); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SoftDeleteByWarehouse saca las entradas de los listados sin tocar su contenido.
func (r *HistoryRepo) SoftDeleteByWarehouse(warehouseID string, now time.Time) error {
	query := `UPDATE history SET deleted_at = $2 WHERE warehouse_id = $1 AND deleted_at IS NULL`
	if _, err := r.q.Exec(context.Background(), query, warehouseID, now); err != nil {
		return fmt.Errorf("soft delete history: %w", err)
	}
	return nil
}
