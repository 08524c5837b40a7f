package dashboard

import (
	"time"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// UseCase resumen agregado para el panel: totales de inventario, categorías,
// items bajo umbral y estado de suministros de todas las bodegas de la empresa.
type UseCase struct {
	warehouses repository.WarehouseRepository
	items      repository.ItemRepository
	supplies   repository.SupplyRepository
}

// NewUseCase construye el caso de uso del panel.
func NewUseCase(warehouses repository.WarehouseRepository, items repository.ItemRepository, supplies repository.SupplyRepository) *UseCase {
	return &UseCase{warehouses: warehouses, items: items, supplies: supplies}
}

// Summary arma el resumen. Solo lecturas: no dispara notificaciones ni marca
// vencidos; eso es trabajo del listado de suministros.
func (uc *UseCase) Summary(p *entity.Principal) (*dto.DashboardSummary, error) {
	if err := auth.RequireActive(p); err != nil {
		return nil, err
	}
	var (
		whs []*entity.Warehouse
		err error
	)
	if p.IsRoot {
		whs, err = uc.warehouses.ListAll()
	} else {
		whs, err = uc.warehouses.ListByCompany(p.CompanyID)
	}
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Warehouse, len(whs))
	ids := make([]string, 0, len(whs))
	for _, wh := range whs {
		byID[wh.ID] = wh
		ids = append(ids, wh.ID)
	}

	summary := &dto.DashboardSummary{
		Warehouses: len(whs),
		Categories: make(map[string]int),
	}

	items, err := uc.items.ListByWarehouses(ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		summary.TotalItems++
		summary.TotalStock += item.Count
		category := item.Category
		if category == "" {
			category = "sin categoría"
		}
		summary.Categories[category]++
		if wh := byID[item.WarehouseID]; wh != nil && item.IsLow(wh) {
			summary.LowItems++
		}
	}

	counts, err := uc.supplies.CountByStatus(ids)
	if err != nil {
		return nil, err
	}
	summary.Supplies = dto.SupplySummary{
		Waiting:  counts[entity.SupplyWaiting],
		Done:     counts[entity.SupplyDone],
		Canceled: counts[entity.SupplyCanceled],
	}

	// todos los waiting: los vencidos se cuentan completos, el panel muestra 5
	waiting, err := uc.supplies.ListUpcoming(ids, 0)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	summary.UpcomingSupplies = make([]dto.SupplyResponse, 0, 5)
	for _, s := range waiting {
		overdue := s.IsOverdue(now)
		if overdue {
			summary.Supplies.Overdue++
		}
		if len(summary.UpcomingSupplies) == 5 {
			continue
		}
		summary.UpcomingSupplies = append(summary.UpcomingSupplies, dto.SupplyResponse{
			ID:          s.ID,
			WarehouseID: s.WarehouseID,
			ItemID:      s.ItemID,
			ItemName:    s.ItemName,
			Amount:      s.Amount,
			ExpectedAt:  s.ExpectedAt,
			Note:        s.Note,
			Status:      s.Status,
			Overdue:     overdue,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return summary, nil
}
