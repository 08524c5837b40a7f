package notification

import (
	"time"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// UseCase lecturas y transición de lectura de notificaciones in-app.
type UseCase struct {
	repo repository.NotificationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve las notificaciones de la empresa del principal (root ve todas).
func (uc *UseCase) List(p *entity.Principal, unreadOnly bool, limit int) ([]dto.NotificationResponse, error) {
	if err := auth.Authorize(p, entity.PermWarehousesUpdate); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	companyID := p.CompanyID
	if p.IsRoot {
		companyID = ""
	}
	list, err := uc.repo.List(companyID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca una notificación como leída (transición única; idempotente).
func (uc *UseCase) MarkRead(p *entity.Principal, notificationID string) error {
	if err := auth.Authorize(p, entity.PermWarehousesUpdate); err != nil {
		return err
	}
	n, err := uc.repo.GetByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	if err := auth.RequireSameCompany(n.CompanyID, p); err != nil {
		return err
	}
	_, err = uc.repo.MarkRead(n.ID, p.ID, time.Now().UTC())
	return err
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:          n.ID,
		CompanyID:   n.CompanyID,
		WarehouseID: n.WarehouseID,
		SupplyID:    n.SupplyID,
		ItemID:      n.ItemID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}
