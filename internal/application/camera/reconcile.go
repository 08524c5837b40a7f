package camera

import (
	"time"

	"github.com/google/uuid"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/inventory"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
	"github.com/invorya/bodega-api/pkg/logger"
)

// UseCase reconciliación de inventario desde cámaras. A diferencia de
// income/outcome, la cámara reporta conteos ABSOLUTOS: el adaptador calcula el
// delta contra el count actual y lo registra en el ledger. El binding HTTP
// one-shot y el stream websocket comparten este mismo caso de uso.
type UseCase struct {
	tx         repository.TxRunner
	warehouses repository.WarehouseRepository
	companies  repository.CompanyRepository
	monitor    *inventory.Monitor
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de cámara.
func NewUseCase(tx repository.TxRunner, warehouses repository.WarehouseRepository, companies repository.CompanyRepository, monitor *inventory.Monitor, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, warehouses: warehouses, companies: companies, monitor: monitor, log: log}
}

// Authenticate valida las credenciales de la cámara: api key de la bodega más
// coincidencia del nombre de empresa. ErrUnauthenticated si no cuadran;
// ErrForbidden si la bodega está bloqueada (el bloqueo también frena la ingesta).
func (uc *UseCase) Authenticate(auth dto.CameraAuth) (*entity.Warehouse, error) {
	if auth.WarehouseID == "" || auth.APIKey == "" {
		return nil, domain.ErrUnauthenticated
	}
	wh, err := uc.warehouses.GetByCameraKey(auth.WarehouseID, auth.APIKey)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrUnauthenticated
	}
	company, err := uc.companies.GetByID(wh.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.Name != auth.Company {
		return nil, domain.ErrUnauthenticated
	}
	if wh.Blocked() {
		return nil, domain.ErrForbidden
	}
	return wh, nil
}

// Reconcile aplica un lote de detecciones sobre la bodega ya autenticada.
// Por detección, en su propia transacción:
//   - tipo nunca visto: se crea el item (categoría "auto", unidad por defecto)
//     con el conteo reportado y una entrada camera_update por el valor inicial;
//   - conteo distinto: se fija el absoluto y se registra el delta firmado;
//   - conteo igual: no-op, sin entrada en el ledger.
//
// Reenviar el mismo lote es idempotente.
func (uc *UseCase) Reconcile(wh *entity.Warehouse, payload dto.CameraDetectPayload) (*dto.CameraResult, error) {
	updated := 0
	for _, d := range payload.Detect {
		if d.Type == "" || d.Count < 0 {
			uc.log.Warn().Str("warehouse_id", wh.ID).Str("type", d.Type).Int("count", d.Count).
				Msg("detección de cámara inválida, ignorada")
			continue
		}
		changed, err := uc.applyDetection(wh, d)
		if err != nil {
			return nil, err
		}
		if changed != nil {
			updated++
			uc.monitor.Evaluate(wh, changed, nil)
		}
	}
	return &dto.CameraResult{OK: true, Warehouse: wh.Name, Updated: updated}, nil
}

// Detect autentica y reconcilia en un paso; es lo que invocan ambos bindings.
func (uc *UseCase) Detect(in dto.CameraDetectRequest) (*dto.CameraResult, error) {
	wh, err := uc.Authenticate(in.Auth)
	if err != nil {
		return nil, err
	}
	return uc.Reconcile(wh, in.Payload)
}

func (uc *UseCase) applyDetection(wh *entity.Warehouse, d dto.CameraDetection) (*entity.Item, error) {
	var changed *entity.Item
	err := uc.tx.Run(func(r repository.TxRepos) error {
		now := time.Now().UTC()
		item, err := r.Items.GetByNameForUpdate(wh.ID, d.Type)
		if err != nil {
			return err
		}
		if item == nil {
			// primer avistamiento: alta automática
			item = &entity.Item{
				ID:          uuid.New().String(),
				WarehouseID: wh.ID,
				Name:        d.Type,
				Category:    entity.AutoCategory,
				Unit:        entity.AutoUnit,
				Count:       d.Count,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := r.Items.Create(item); err != nil {
				return err
			}
			changed = item
			return r.History.Append(&entity.HistoryEntry{
				ID:          uuid.New().String(),
				ItemID:      item.ID,
				WarehouseID: wh.ID,
				Type:        entity.HistoryCameraUpdate,
				Amount:      d.Count,
				TS:          now,
			})
		}
		if item.Count == d.Count {
			// sin cambio: ni update ni ledger
			return nil
		}
		delta := d.Count - item.Count
		if err := r.Items.SetCount(item.ID, d.Count); err != nil {
			return err
		}
		item.Count = d.Count
		item.UpdatedAt = now
		changed = item
		return r.History.Append(&entity.HistoryEntry{
			ID:          uuid.New().String(),
			ItemID:      item.ID,
			WarehouseID: wh.ID,
			Type:        entity.HistoryCameraUpdate,
			Amount:      delta,
			TS:          now,
		})
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}
