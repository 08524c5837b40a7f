package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, warehouse_id, name, category, unit, count, low_limit, low_notified_at, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(&i.ID, &i.WarehouseID, &i.Name, &i.Category, &i.Unit,
		&i.Count, &i.LowLimit, &i.LowNotifiedAt, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

// Create persiste un nuevo item. ErrConflict si ya existe (warehouse_id, name).
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, warehouse_id, name, category, unit, count, low_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.WarehouseID, item.Name, item.Category, item.Unit,
		item.Count, item.LowLimit, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item vivo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND deleted_at IS NULL`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByName obtiene un item vivo por nombre dentro de una bodega.
func (r *ItemRepo) GetByName(warehouseID, name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE warehouse_id = $1 AND name = $2 AND deleted_at IS NULL`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, warehouseID, name))
	if err != nil {
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return item, nil
}

// GetByNameForUpdate igual que GetByName pero bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ItemRepo) GetByNameForUpdate(warehouseID, name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE warehouse_id = $1 AND name = $2 AND deleted_at IS NULL FOR UPDATE`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, warehouseID, name))
	if err != nil {
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return item, nil
}

// itemSortColumn traduce el sort pedido a una columna conocida; cualquier otra
// cosa cae en name para no interpolar entrada del usuario.
func itemSortColumn(sort string) string {
	switch sort {
	case "count", "category", "created_at", "updated_at":
		return sort
	default:
		return "name"
	}
}

// ListByWarehouse lista los items vivos de una bodega según filtros.
func (r *ItemRepo) ListByWarehouse(warehouseID string, f repository.ItemFilter) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE warehouse_id = $1 AND deleted_at IS NULL`
	args := []any{warehouseID}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY " + itemSortColumn(f.Sort)
	if f.Desc {
		query += " DESC"
	}
	return r.queryItems(query, args...)
}

// ListByWarehouses lista los items vivos de varias bodegas (panel y exportes).
func (r *ItemRepo) ListByWarehouses(warehouseIDs []string) ([]*entity.Item, error) {
	if len(warehouseIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE warehouse_id = ANY($1) AND deleted_at IS NULL ORDER BY name`
	return r.queryItems(query, warehouseIDs)
}

func (r *ItemRepo) queryItems(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.WarehouseID, &i.Name, &i.Category, &i.Unit,
			&i.Count, &i.LowLimit, &i.LowNotifiedAt, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// UpdateFields actualiza solo metadata; el count se muta por ApplyDelta/SetCount.
func (r *ItemRepo) UpdateFields(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, category = $3, unit = $4, low_limit = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Unit, item.LowLimit, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyDelta incrementa count en una sola sentencia condicional: nunca deja el
// count negativo aunque compitan varias salidas por el mismo item.
func (r *ItemRepo) ApplyDelta(id string, delta int) (*entity.Item, error) {
	query := `
		UPDATE items SET count = count + $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL AND count + $2 >= 0
		RETURNING ` + itemColumns
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id, delta))
	if err != nil {
		return nil, fmt.Errorf("apply delta: %w", err)
	}
	if item == nil {
		// distinguir inexistente de stock insuficiente
		existing, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrInsufficientStock
	}
	return item, nil
}

// SetCount fija el count absoluto (reconciliación de cámara, dentro de tx).
func (r *ItemRepo) SetCount(id string, count int) error {
	query := `UPDATE items SET count = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(context.Background(), query, id, count)
	if err != nil {
		return fmt.Errorf("set count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkLowNotified fija el flag solo si estaba en NULL; el RowsAffected dice si
// esta llamada ganó la carrera.
func (r *ItemRepo) MarkLowNotified(id string, now time.Time) (bool, error) {
	query := `UPDATE items SET low_notified_at = $2 WHERE id = $1 AND deleted_at IS NULL AND low_notified_at IS NULL`
	cmd, err := r.q.Exec(context.Background(), query, id, now)
	if err != nil {
		return false, fmt.Errorf("mark low notified: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ClearLowNotified limpia el flag solo si estaba fijado.
func (r *ItemRepo) ClearLowNotified(id string) (bool, error) {
	query := `UPDATE items SET low_notified_at = NULL WHERE id = $1 AND deleted_at IS NULL AND low_notified_at IS NOT NULL`
	cmd, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return false, fmt.Errorf("clear low notified: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// SoftDeleteByWarehouse marca deleted_at en todos los items vivos de la bodega.
func (r *ItemRepo) SoftDeleteByWarehouse(warehouseID string, now time.Time) error {
	query := `UPDATE items SET deleted_at = $2 WHERE warehouse_id = $1 AND deleted_at IS NULL`
	if _, err := r.q.Exec(context.Background(), query, warehouseID, now); err != nil {
		return fmt.Errorf("soft delete items: %w", err)
	}
	return nil
}
