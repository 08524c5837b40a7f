package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// ItemUseCase casos de uso de inventario: alta, listado, metadata y las
// mutaciones manuales de stock (income/outcome). Toda mutación aceptada deja
// exactamente una entrada en el ledger de historial, dentro de la misma
// transacción.
type ItemUseCase struct {
	tx         repository.TxRunner
	items      repository.ItemRepository
	history    repository.HistoryRepository
	warehouses repository.WarehouseRepository
	monitor    *Monitor
}

// NewItemUseCase construye el caso de uso de items.
func NewItemUseCase(tx repository.TxRunner, items repository.ItemRepository, history repository.HistoryRepository, warehouses repository.WarehouseRepository, monitor *Monitor) *ItemUseCase {
	return &ItemUseCase{tx: tx, items: items, history: history, warehouses: warehouses, monitor: monitor}
}

// warehouseFor resuelve la bodega y aplica el aislamiento por empresa.
func (uc *ItemUseCase) warehouseFor(p *entity.Principal, warehouseID string) (*entity.Warehouse, error) {
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

// Create da de alta un item en la bodega. El nombre es único por bodega:
// ErrConflict si ya existe. El alta escribe una entrada en el ledger: "create"
// si nace sin stock, "income" con el count inicial si nace con él.
func (uc *ItemUseCase) Create(p *entity.Principal, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := auth.Authorize(p, entity.PermItemsCreate); err != nil {
		return nil, err
	}
	wh, err := uc.warehouseFor(p, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh.Blocked() {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Count < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.LowLimit != nil && *in.LowLimit < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	item := &entity.Item{
		ID:          uuid.New().String(),
		WarehouseID: wh.ID,
		Name:        in.Name,
		Category:    in.Category,
		Unit:        in.Unit,
		Count:       in.Count,
		LowLimit:    in.LowLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Un alta con stock inicial es a la vez creación e ingreso: el ledger
	// registra income para que la suma de deltas reproduzca el count.
	entryType := entity.HistoryCreate
	if item.Count > 0 {
		entryType = entity.HistoryIncome
	}
	err = uc.tx.Run(func(r repository.TxRepos) error {
		if err := r.Items.Create(item); err != nil {
			return err
		}
		return r.History.Append(&entity.HistoryEntry{
			ID:          uuid.New().String(),
			ItemID:      item.ID,
			WarehouseID: wh.ID,
			Type:        entryType,
			Amount:      item.Count,
			TS:          now,
			ByUserID:    &p.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	// Un item puede nacer ya en o bajo su umbral.
	uc.monitor.Evaluate(wh, item, &p.ID)
	resp := toItemResponse(item)
	return &resp, nil
}

// List devuelve los items de la bodega según filtros. El filtro low_only se
// resuelve aquí porque el umbral efectivo depende del default de la bodega.
func (uc *ItemUseCase) List(p *entity.Principal, warehouseID string, f repository.ItemFilter) ([]dto.ItemResponse, error) {
	if err := auth.RequireActive(p); err != nil {
		return nil, err
	}
	wh, err := uc.warehouseFor(p, warehouseID)
	if err != nil {
		return nil, err
	}
	lowOnly := f.LowOnly
	f.LowOnly = false
	list, err := uc.items.ListByWarehouse(wh.ID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, item := range list {
		if lowOnly && !item.IsLow(wh) {
			continue
		}
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

// Update modifica solo metadata (nombre, categoría, unidad, umbral). El count no
// se toca por esta vía y no se escribe historial. Cambiar low_limit re-evalúa el
// monitor: bajar el umbral por debajo del count actual re-arma el disparador.
func (uc *ItemUseCase) Update(p *entity.Principal, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := auth.Authorize(p, entity.PermItemsUpdate); err != nil {
		return nil, err
	}
	item, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseFor(p, item.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh.Blocked() {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.LowLimit != nil {
		if *in.LowLimit < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.LowLimit = in.LowLimit
	}
	item.UpdatedAt = time.Now().UTC()
	if err := uc.items.UpdateFields(item); err != nil {
		return nil, err
	}
	uc.monitor.Evaluate(wh, item, &p.ID)
	resp := toItemResponse(item)
	return &resp, nil
}

// Income registra una entrada manual de stock. Amount debe ser positivo.
func (uc *ItemUseCase) Income(p *entity.Principal, in dto.ItemOpRequest) (*dto.ItemResponse, error) {
	return uc.applyOp(p, in, entity.HistoryIncome)
}

// Outcome registra una salida manual de stock. Amount debe ser positivo;
// ErrInsufficientStock si dejaría el count negativo (se rechaza, no se recorta).
func (uc *ItemUseCase) Outcome(p *entity.Principal, in dto.ItemOpRequest) (*dto.ItemResponse, error) {
	return uc.applyOp(p, in, entity.HistoryOutcome)
}

func (uc *ItemUseCase) applyOp(p *entity.Principal, in dto.ItemOpRequest, opType string) (*dto.ItemResponse, error) {
	if err := auth.Authorize(p, entity.PermItemsOp); err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseFor(p, item.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh.Blocked() {
		return nil, domain.ErrForbidden
	}
	delta := in.Amount
	if opType == entity.HistoryOutcome {
		delta = -in.Amount
	}
	var updated *entity.Item
	err = uc.tx.Run(func(r repository.TxRepos) error {
		var err error
		updated, err = r.Items.ApplyDelta(item.ID, delta)
		if err != nil {
			return err
		}
		return r.History.Append(&entity.HistoryEntry{
			ID:          uuid.New().String(),
			ItemID:      item.ID,
			WarehouseID: wh.ID,
			Type:        opType,
			Amount:      delta,
			TS:          time.Now().UTC(),
			ByUserID:    &p.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.monitor.Evaluate(wh, updated, &p.ID)
	resp := toItemResponse(updated)
	return &resp, nil
}

// HistoryByItem devuelve el historial de un item, más reciente primero.
func (uc *ItemUseCase) HistoryByItem(p *entity.Principal, itemID string, limit int) ([]dto.HistoryEntryResponse, error) {
	if err := auth.RequireActive(p); err != nil {
		return nil, err
	}
	item, err := uc.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.warehouseFor(p, item.WarehouseID); err != nil {
		return nil, err
	}
	entries, err := uc.history.ListByItem(item.ID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return toHistoryResponses(entries), nil
}

// HistoryByWarehouse devuelve el historial de toda la bodega con item_name resuelto.
func (uc *ItemUseCase) HistoryByWarehouse(p *entity.Principal, warehouseID string, limit int) ([]dto.HistoryEntryResponse, error) {
	if err := auth.RequireActive(p); err != nil {
		return nil, err
	}
	wh, err := uc.warehouseFor(p, warehouseID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.history.ListByWarehouse(wh.ID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return toHistoryResponses(entries), nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

func toItemResponse(i *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            i.ID,
		WarehouseID:   i.WarehouseID,
		Name:          i.Name,
		Category:      i.Category,
		Unit:          i.Unit,
		Count:         i.Count,
		LowLimit:      i.LowLimit,
		LowNotifiedAt: i.LowNotifiedAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toHistoryResponses(entries []*entity.HistoryEntry) []dto.HistoryEntryResponse {
	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryResponse{
			ID:          e.ID,
			ItemID:      e.ItemID,
			WarehouseID: e.WarehouseID,
			ItemName:    e.ItemName,
			Type:        e.Type,
			Amount:      e.Amount,
			Note:        e.Note,
			TS:          e.TS,
			ByUserID:    e.ByUserID,
		})
	}
	return out
}
