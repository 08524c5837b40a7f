package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, company_id, warehouse_id, supply_id, item_id, type, title, message, read, read_at, read_by_user_id, by_user_id, created_at`

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository construye el adaptador de notificaciones.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// Create persiste una notificación in-app.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, company_id, warehouse_id, supply_id, item_id, type, title, message, by_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		n.ID, n.CompanyID, n.WarehouseID, n.SupplyID, n.ItemID, n.Type, n.Title, n.Message, n.ByUserID, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// GetByID obtiene una notificación por ID.
func (r *NotificationRepo) GetByID(id string) (*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	var n entity.Notification
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&n.ID, &n.CompanyID, &n.WarehouseID, &n.SupplyID, &n.ItemID, &n.Type,
		&n.Title, &n.Message, &n.Read, &n.ReadAt, &n.ReadByUserID, &n.ByUserID, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return &n, nil
}

// List devuelve notificaciones más recientes primero; companyID vacío = todas (root).
func (r *NotificationRepo) List(companyID string, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE 1=1`
	var args []any
	if companyID != "" {
		args = append(args, companyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	}
	if unreadOnly {
		query += " AND read = FALSE"
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.WarehouseID, &n.SupplyID, &n.ItemID, &n.Type,
			&n.Title, &n.Message, &n.Read, &n.ReadAt, &n.ReadByUserID, &n.ByUserID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca como leída solo si no lo estaba; devuelve si esta llamada lo hizo.
func (r *NotificationRepo) MarkRead(id, userID string, now time.Time) (bool, error) {
	query := `
		UPDATE notifications SET read = TRUE, read_at = $2, read_by_user_id = $3
		WHERE id = $1 AND read = FALSE`
	cmd, err := r.pool.Exec(context.Background(), query, id, now, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
