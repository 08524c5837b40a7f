package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, company_id, name, low_stock_default, notification_emails, COALESCE(camera_api_key, ''), blocked_at, created_at, updated_at`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	pool *pgxpool.Pool
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(pool *pgxpool.Pool) *WarehouseRepo {
	return &WarehouseRepo{pool: pool}
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.CompanyID, &w.Name, &w.LowStockDefault, &w.NotificationEmails,
		&w.CameraAPIKey, &w.BlockedAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, company_id, name, low_stock_default, notification_emails, camera_api_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		w.ID, w.CompanyID, w.Name, w.LowStockDefault, w.NotificationEmails,
		w.CameraAPIKey, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega viva por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1 AND deleted_at IS NULL`
	w, err := scanWarehouse(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// GetByCameraKey autentica la ingesta de cámara: bodega viva con esa api key.
func (r *WarehouseRepo) GetByCameraKey(id, apiKey string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1 AND camera_api_key = $2 AND deleted_at IS NULL`
	w, err := scanWarehouse(r.pool.QueryRow(context.Background(), query, id, apiKey))
	if err != nil {
		return nil, fmt.Errorf("get warehouse by camera key: %w", err)
	}
	return w, nil
}

// ListByCompany lista las bodegas vivas de una empresa.
func (r *WarehouseRepo) ListByCompany(companyID string) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE company_id = $1 AND deleted_at IS NULL ORDER BY name`
	return r.queryWarehouses(query, companyID)
}

// ListAll lista todas las bodegas vivas (solo root).
func (r *WarehouseRepo) ListAll() ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE deleted_at IS NULL ORDER BY name`
	return r.queryWarehouses(query)
}

func (r *WarehouseRepo) queryWarehouses(query string, args ...any) ([]*entity.Warehouse, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.Name, &w.LowStockDefault, &w.NotificationEmails,
			&w.CameraAPIKey, &w.BlockedAt, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Update actualiza nombre, destinatarios y umbral por defecto.
func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, low_stock_default = $3, notification_emails = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.pool.Exec(context.Background(), query,
		w.ID, w.Name, w.LowStockDefault, w.NotificationEmails, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetBlocked fija o limpia blocked_at.
func (r *WarehouseRepo) SetBlocked(id string, at *time.Time) error {
	query := `UPDATE warehouses SET blocked_at = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.pool.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("set blocked: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca deleted_at; la fila queda para auditoría.
func (r *WarehouseRepo) SoftDelete(id string, now time.Time) error {
	query := `UPDATE warehouses SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.pool.Exec(context.Background(), query, id, now)
	if err != nil {
		return fmt.Errorf("soft delete warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
