package warehouse

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// UseCase gestión de bodegas: alta con api key de cámara, listado, edición,
// bloqueo (solo root) y borrado con cascade soft a items, suministros e historial.
type UseCase struct {
	warehouses repository.WarehouseRepository
	items      repository.ItemRepository
	supplies   repository.SupplyRepository
	history    repository.HistoryRepository
}

// NewUseCase construye el caso de uso de bodegas.
func NewUseCase(warehouses repository.WarehouseRepository, items repository.ItemRepository, supplies repository.SupplyRepository, history repository.HistoryRepository) *UseCase {
	return &UseCase{warehouses: warehouses, items: items, supplies: supplies, history: history}
}

// newCameraKey genera la api key de cámara: 32 bytes aleatorios en hex.
func newCameraKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create da de alta la bodega en la empresa del principal. La respuesta incluye
// la camera_api_key; es la única vez que se expone.
func (uc *UseCase) Create(p *entity.Principal, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := auth.Authorize(p, entity.PermWarehousesCreate); err != nil {
		return nil, err
	}
	if in.Name == "" || in.LowStockDefault < 0 {
		return nil, domain.ErrInvalidInput
	}
	companyID := p.CompanyID
	if in.CompanyID != "" && in.CompanyID != p.CompanyID {
		// solo root puede dar de alta bodegas en nombre de otra empresa
		if !p.IsRoot {
			return nil, domain.ErrForbidden
		}
		companyID = in.CompanyID
	}
	if companyID == "" {
		// root no pertenece a ninguna empresa; debe indicar la dueña
		return nil, domain.ErrInvalidInput
	}
	key, err := newCameraKey()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	wh := &entity.Warehouse{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		Name:               in.Name,
		LowStockDefault:    in.LowStockDefault,
		NotificationEmails: in.NotificationEmails,
		CameraAPIKey:       key,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.warehouses.Create(wh); err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(wh, true)
	return &resp, nil
}

// List devuelve las bodegas visibles para el principal (root ve todas).
func (uc *UseCase) List(p *entity.Principal) ([]dto.WarehouseResponse, error) {
	if err := auth.RequireActive(p); err != nil {
		return nil, err
	}
	var (
		list []*entity.Warehouse
		err  error
	)
	if p.IsRoot {
		list, err = uc.warehouses.ListAll()
	} else {
		list, err = uc.warehouses.ListByCompany(p.CompanyID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, wh := range list {
		out = append(out, toWarehouseResponse(wh, false))
	}
	return out, nil
}

// Get devuelve una bodega por id.
func (uc *UseCase) Get(p *entity.Principal, id string) (*dto.WarehouseResponse, error) {
	if err := auth.RequireActive(p); err != nil {
		return nil, err
	}
	wh, err := uc.guarded(p, id)
	if err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(wh, false)
	return &resp, nil
}

// Update edita nombre, destinatarios de alertas y umbral por defecto.
func (uc *UseCase) Update(p *entity.Principal, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := auth.Authorize(p, entity.PermWarehousesUpdate); err != nil {
		return nil, err
	}
	wh, err := uc.guarded(p, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		wh.Name = *in.Name
	}
	if in.NotificationEmails != nil {
		wh.NotificationEmails = *in.NotificationEmails
	}
	if in.LowStockDefault != nil {
		if *in.LowStockDefault < 0 {
			return nil, domain.ErrInvalidInput
		}
		wh.LowStockDefault = *in.LowStockDefault
	}
	wh.UpdatedAt = time.Now().UTC()
	if err := uc.warehouses.Update(wh); err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(wh, false)
	return &resp, nil
}

// SetBlocked bloquea o desbloquea una bodega. Operación exclusiva de root: el
// bloqueo es la palanca administrativa contra una empresa, no una función de ella.
func (uc *UseCase) SetBlocked(p *entity.Principal, id string, blocked bool) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if !p.IsRoot {
		return domain.ErrForbidden
	}
	wh, err := uc.warehouses.GetByID(id)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	var at *time.Time
	if blocked {
		now := time.Now().UTC()
		at = &now
	}
	return uc.warehouses.SetBlocked(id, at)
}

// Delete borra (soft) la bodega y en cascada sus items, suministros e historial.
func (uc *UseCase) Delete(p *entity.Principal, id string) error {
	if err := auth.Authorize(p, entity.PermWarehousesDelete); err != nil {
		return err
	}
	wh, err := uc.guarded(p, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if err := uc.warehouses.SoftDelete(wh.ID, now); err != nil {
		return err
	}
	if err := uc.items.SoftDeleteByWarehouse(wh.ID, now); err != nil {
		return err
	}
	if err := uc.supplies.SoftDeleteByWarehouse(wh.ID, now); err != nil {
		return err
	}
	return uc.history.SoftDeleteByWarehouse(wh.ID, now)
}

func (uc *UseCase) guarded(p *entity.Principal, id string) (*entity.Warehouse, error) {
	wh, err := uc.warehouses.GetByID(id)
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

func toWarehouseResponse(w *entity.Warehouse, withKey bool) dto.WarehouseResponse {
	resp := dto.WarehouseResponse{
		ID:                 w.ID,
		CompanyID:          w.CompanyID,
		Name:               w.Name,
		LowStockDefault:    w.LowStockDefault,
		NotificationEmails: w.NotificationEmails,
		BlockedAt:          w.BlockedAt,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
	if withKey {
		resp.CameraAPIKey = w.CameraAPIKey
	}
	return resp
}
