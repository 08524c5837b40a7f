package supply

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/inventory"
	"github.com/invorya/bodega-api/internal/application/notification"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// Notifier puerto hacia el despachador de notificaciones in-app.
type Notifier interface {
	Notify(p notification.NotifyParams) *entity.Notification
}

// UseCase ciclo de vida de suministros: waiting -> done | canceled. done acredita
// el stock del item exactamente una vez, en la misma transacción que el cambio de
// estado. La detección de vencidos es perezosa: ocurre al listar, no hay scheduler.
type UseCase struct {
	tx         repository.TxRunner
	supplies   repository.SupplyRepository
	items      repository.ItemRepository
	warehouses repository.WarehouseRepository
	monitor    *inventory.Monitor
	notifier   Notifier
}

// NewUseCase construye el caso de uso de suministros.
func NewUseCase(tx repository.TxRunner, supplies repository.SupplyRepository, items repository.ItemRepository, warehouses repository.WarehouseRepository, monitor *inventory.Monitor, notifier Notifier) *UseCase {
	return &UseCase{tx: tx, supplies: supplies, items: items, warehouses: warehouses, monitor: monitor, notifier: notifier}
}

func (uc *UseCase) warehouseFor(p *entity.Principal, warehouseID string) (*entity.Warehouse, error) {
	wh, err := uc.warehouses.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if err := auth.RequireSameCompany(wh.CompanyID, p); err != nil {
		return nil, err
	}
	return wh, nil
}

// Create registra un suministro en waiting. El item debe existir en la misma
// bodega; ErrNotFound si no.
func (uc *UseCase) Create(p *entity.Principal, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	if err := auth.Authorize(p, entity.PermSuppliesCreate); err != nil {
		return nil, err
	}
	wh, err := uc.warehouseFor(p, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh.Blocked() {
		return nil, domain.ErrForbidden
	}
	if in.Amount <= 0 || in.ExpectedAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.WarehouseID != wh.ID {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	s := &entity.Supply{
		ID:          uuid.New().String(),
		WarehouseID: wh.ID,
		ItemID:      item.ID,
		Amount:      in.Amount,
		ExpectedAt:  in.ExpectedAt.UTC(),
		Note:        in.Note,
		Status:      entity.SupplyWaiting,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.supplies.Create(s); err != nil {
		return nil, err
	}
	uc.notifier.Notify(notification.NotifyParams{
		CompanyID:   wh.CompanyID,
		WarehouseID: &wh.ID,
		SupplyID:    &s.ID,
		ItemID:      &item.ID,
		Type:        entity.NotifSupplyCreated,
		Title:       fmt.Sprintf("Suministro creado: %s", item.Name),
		Message: fmt.Sprintf("Se esperan %d %s de «%s» para el %s.",
			s.Amount, item.Unit, item.Name, s.ExpectedAt.Format("2006-01-02")),
		ByUserID: &p.ID,
	})
	s.ItemName = item.Name
	resp := toSupplyResponse(s)
	return &resp, nil
}

// List devuelve los suministros de la bodega. Aquí ocurre la detección perezosa
// de vencidos: un waiting con expected_at en el pasado se marca overdue y, la
// primera vez, dispara la notificación supply_overdue (dedup por flag).
func (uc *UseCase) List(p *entity.Principal, warehouseID string, f repository.SupplyFilter) ([]dto.SupplyResponse, error) {
	if err := auth.RequireActive(p); err != nil {
		return nil, err
	}
	wh, err := uc.warehouseFor(p, warehouseID)
	if err != nil {
		return nil, err
	}
	search := f.Search
	f.Search = ""
	list, err := uc.supplies.ListByWarehouse(wh.ID, f)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	fold := cases.Fold()
	query := fold.String(search)
	out := make([]dto.SupplyResponse, 0, len(list))
	for _, s := range list {
		if s.IsOverdue(now) {
			s.Overdue = true
			uc.notifyOverdue(wh, s, now)
		}
		if query != "" &&
			!strings.Contains(fold.String(s.ItemName), query) &&
			!strings.Contains(fold.String(s.Note), query) {
			continue
		}
		out = append(out, toSupplyResponse(s))
	}
	return out, nil
}

func (uc *UseCase) notifyOverdue(wh *entity.Warehouse, s *entity.Supply, now time.Time) {
	won, err := uc.supplies.MarkOverdueNotified(s.ID, now)
	if err != nil || !won {
		return
	}
	uc.notifier.Notify(notification.NotifyParams{
		CompanyID:   wh.CompanyID,
		WarehouseID: &wh.ID,
		SupplyID:    &s.ID,
		ItemID:      &s.ItemID,
		Type:        entity.NotifSupplyOverdue,
		Title:       fmt.Sprintf("Suministro vencido: %s", s.ItemName),
		Message: fmt.Sprintf("El suministro de «%s» esperado para el %s sigue en waiting.",
			s.ItemName, s.ExpectedAt.Format("2006-01-02")),
	})
}

// SetStatus cierra un suministro: done acredita el stock (exactamente una vez) y
// escribe la entrada income "auto from supply" en la misma transacción; canceled
// solo cambia el estado. Re-cerrar un suministro terminal es ErrInvalidTransition.
func (uc *UseCase) SetStatus(p *entity.Principal, in dto.UpdateSupplyStatusRequest) (*dto.SupplyResponse, error) {
	if err := auth.Authorize(p, entity.PermSuppliesUpdate); err != nil {
		return nil, err
	}
	if !entity.ValidSupplyStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.supplies.GetByID(in.SupplyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseFor(p, s.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh.Blocked() {
		return nil, domain.ErrForbidden
	}
	now := time.Now().UTC()
	var credited *entity.Item
	err = uc.tx.Run(func(r repository.TxRepos) error {
		won, err := r.Supplies.MarkStatus(s.ID, in.Status, now)
		if err != nil {
			return err
		}
		if !won {
			// el suministro existe pero ya no está en waiting
			return domain.ErrInvalidTransition
		}
		if in.Status != entity.SupplyDone {
			return nil
		}
		credited, err = r.Items.ApplyDelta(s.ItemID, s.Amount)
		if err != nil {
			return err
		}
		return r.History.Append(&entity.HistoryEntry{
			ID:          uuid.New().String(),
			ItemID:      s.ItemID,
			WarehouseID: s.WarehouseID,
			Type:        entity.HistoryIncome,
			Amount:      s.Amount,
			Note:        "auto from supply",
			TS:          now,
			ByUserID:    &p.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	if credited != nil {
		uc.monitor.Evaluate(wh, credited, &p.ID)
	}
	itemName := s.ItemName
	if item, err := uc.items.GetByID(s.ItemID); err == nil && item != nil {
		itemName = item.Name
	}
	uc.notifier.Notify(notification.NotifyParams{
		CompanyID:   wh.CompanyID,
		WarehouseID: &wh.ID,
		SupplyID:    &s.ID,
		ItemID:      &s.ItemID,
		Type:        entity.NotifSupplyStatus,
		Title:       fmt.Sprintf("Suministro %s: %s", in.Status, itemName),
		Message:     fmt.Sprintf("El suministro de «%s» pasó a %s.", itemName, in.Status),
		ByUserID:    &p.ID,
	})
	s.Status = in.Status
	s.UpdatedAt = now
	s.ItemName = itemName
	resp := toSupplyResponse(s)
	return &resp, nil
}

func toSupplyResponse(s *entity.Supply) dto.SupplyResponse {
	return dto.SupplyResponse{
		ID:          s.ID,
		WarehouseID: s.WarehouseID,
		ItemID:      s.ItemID,
		ItemName:    s.ItemName,
		Amount:      s.Amount,
		ExpectedAt:  s.ExpectedAt,
		Note:        s.Note,
		Status:      s.Status,
		Overdue:     s.Overdue,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
