// Package memrepo implementa los puertos de repositorio en memoria para tests
// de casos de uso. Respeta la semántica condicional de los repos reales
// (ApplyDelta, MarkStatus, flags de dedup) para que los tests ejerciten los
// invariantes y no un doble trivial.
package memrepo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// ItemRepo repositorio de items en memoria.
type ItemRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Item
}

// NewItemRepo construye el repo vacío.
func NewItemRepo() *ItemRepo {
	return &ItemRepo{byID: make(map[string]*entity.Item)}
}

func cloneItem(i *entity.Item) *entity.Item {
	c := *i
	return &c
}

func (r *ItemRepo) Create(item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.DeletedAt == nil && existing.WarehouseID == item.WarehouseID && existing.Name == item.Name {
			return domain.ErrConflict
		}
	}
	r.byID[item.ID] = cloneItem(item)
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok || i.DeletedAt != nil {
		return nil, nil
	}
	return cloneItem(i), nil
}

func (r *ItemRepo) GetByName(warehouseID, name string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.byID {
		if i.DeletedAt == nil && i.WarehouseID == warehouseID && i.Name == name {
			return cloneItem(i), nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) GetByNameForUpdate(warehouseID, name string) (*entity.Item, error) {
	return r.GetByName(warehouseID, name)
}

func (r *ItemRepo) ListByWarehouse(warehouseID string, f repository.ItemFilter) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Item
	for _, i := range r.byID {
		if i.DeletedAt != nil || i.WarehouseID != warehouseID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(i.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.Category != "" && i.Category != f.Category {
			continue
		}
		out = append(out, cloneItem(i))
	}
	sort.Slice(out, func(a, b int) bool {
		var less bool
		switch f.Sort {
		case "count":
			less = out[a].Count < out[b].Count
		case "category":
			less = out[a].Category < out[b].Category
		case "created_at":
			less = out[a].CreatedAt.Before(out[b].CreatedAt)
		default:
			less = out[a].Name < out[b].Name
		}
		if f.Desc {
			return !less
		}
		return less
	})
	return out, nil
}

func (r *ItemRepo) ListByWarehouses(warehouseIDs []string) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]bool, len(warehouseIDs))
	for _, id := range warehouseIDs {
		ids[id] = true
	}
	var out []*entity.Item
	for _, i := range r.byID {
		if i.DeletedAt == nil && ids[i.WarehouseID] {
			out = append(out, cloneItem(i))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (r *ItemRepo) UpdateFields(item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[item.ID]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrNotFound
	}
	stored.Name = item.Name
	stored.Category = item.Category
	stored.Unit = item.Unit
	stored.LowLimit = item.LowLimit
	stored.UpdatedAt = item.UpdatedAt
	return nil
}

func (r *ItemRepo) ApplyDelta(id string, delta int) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok || stored.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if stored.Count+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	stored.Count += delta
	stored.UpdatedAt = time.Now().UTC()
	return cloneItem(stored), nil
}

func (r *ItemRepo) SetCount(id string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrNotFound
	}
	stored.Count = count
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *ItemRepo) MarkLowNotified(id string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok || stored.DeletedAt != nil {
		return false, domain.ErrNotFound
	}
	if stored.LowNotifiedAt != nil {
		return false, nil
	}
	stored.LowNotifiedAt = &now
	return true, nil
}

func (r *ItemRepo) ClearLowNotified(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok || stored.DeletedAt != nil {
		return false, domain.ErrNotFound
	}
	if stored.LowNotifiedAt == nil {
		return false, nil
	}
	stored.LowNotifiedAt = nil
	return true, nil
}

func (r *ItemRepo) SoftDeleteByWarehouse(warehouseID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.byID {
		if i.DeletedAt == nil && i.WarehouseID == warehouseID {
			at := now
			i.DeletedAt = &at
		}
	}
	return nil
}

// HistoryRepo ledger de historial en memoria. Si items no es nil, resuelve
// item_name en los listados por bodega como hace el repo real con un join.
type HistoryRepo struct {
	mu      sync.Mutex
	entries []*entity.HistoryEntry
	deleted map[string]bool // warehouse_id -> soft-deleted
	items   *ItemRepo
}

// NewHistoryRepo construye el ledger vacío.
func NewHistoryRepo(items *ItemRepo) *HistoryRepo {
	return &HistoryRepo{deleted: make(map[string]bool), items: items}
}

func (r *HistoryRepo) Append(e *entity.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *e
	r.entries = append(r.entries, &c)
	return nil
}

func (r *HistoryRepo) ListByItem(itemID string, limit int) ([]*entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.HistoryEntry
	for _, e := range r.entries {
		if e.ItemID == itemID && !r.deleted[e.WarehouseID] {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].TS.After(out[b].TS) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *HistoryRepo) ListByWarehouse(warehouseID string, limit int) ([]*entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.HistoryEntry
	for _, e := range r.entries {
		if e.WarehouseID == warehouseID && !r.deleted[warehouseID] {
			c := *e
			if r.items != nil {
				if i, ok := r.items.byID[c.ItemID]; ok {
					c.ItemName = i.Name
				}
			}
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].TS.After(out[b].TS) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *HistoryRepo) SoftDeleteByWarehouse(warehouseID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[warehouseID] = true
	return nil
}

// All devuelve todas las entradas vivas (solo para asserts de tests).
func (r *HistoryRepo) All() []*entity.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.HistoryEntry
	for _, e := range r.entries {
		if !r.deleted[e.WarehouseID] {
			c := *e
			out = append(out, &c)
		}
	}
	return out
}

// SupplyRepo repositorio de suministros en memoria.
type SupplyRepo struct {
	mu    sync.Mutex
	byID  map[string]*entity.Supply
	items *ItemRepo
}

// NewSupplyRepo construye el repo vacío.
func NewSupplyRepo(items *ItemRepo) *SupplyRepo {
	return &SupplyRepo{byID: make(map[string]*entity.Supply), items: items}
}

func cloneSupply(s *entity.Supply) *entity.Supply {
	c := *s
	return &c
}

func (r *SupplyRepo) Create(s *entity.Supply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = cloneSupply(s)
	return nil
}

func (r *SupplyRepo) GetByID(id string) (*entity.Supply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok || s.DeletedAt != nil {
		return nil, nil
	}
	return cloneSupply(s), nil
}

func (r *SupplyRepo) ListByWarehouse(warehouseID string, f repository.SupplyFilter) ([]*entity.Supply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Supply
	for _, s := range r.byID {
		if s.DeletedAt != nil || s.WarehouseID != warehouseID {
			continue
		}
		if f.Status != "" && f.Status != "all" && s.Status != f.Status {
			continue
		}
		c := cloneSupply(s)
		if r.items != nil {
			if i, ok := r.items.byID[c.ItemID]; ok {
				c.ItemName = i.Name
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(a, b int) bool {
		less := out[a].ExpectedAt.Before(out[b].ExpectedAt)
		if f.Desc {
			return !less
		}
		return less
	})
	return out, nil
}

func (r *SupplyRepo) MarkStatus(id, status string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok || s.DeletedAt != nil {
		return false, nil
	}
	if s.Status != entity.SupplyWaiting {
		return false, nil
	}
	s.Status = status
	s.UpdatedAt = now
	return true, nil
}

func (r *SupplyRepo) MarkOverdueNotified(id string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok || s.DeletedAt != nil {
		return false, nil
	}
	if s.OverdueNotifiedAt != nil {
		return false, nil
	}
	s.OverdueNotifiedAt = &now
	return true, nil
}

func (r *SupplyRepo) CountByStatus(warehouseIDs []string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]bool, len(warehouseIDs))
	for _, id := range warehouseIDs {
		ids[id] = true
	}
	out := make(map[string]int)
	for _, s := range r.byID {
		if s.DeletedAt == nil && ids[s.WarehouseID] {
			out[s.Status]++
		}
	}
	return out, nil
}

func (r *SupplyRepo) ListUpcoming(warehouseIDs []string, limit int) ([]*entity.Supply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]bool, len(warehouseIDs))
	for _, id := range warehouseIDs {
		ids[id] = true
	}
	var out []*entity.Supply
	for _, s := range r.byID {
		if s.DeletedAt == nil && ids[s.WarehouseID] && s.Status == entity.SupplyWaiting {
			out = append(out, cloneSupply(s))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ExpectedAt.Before(out[b].ExpectedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SupplyRepo) SoftDeleteByWarehouse(warehouseID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.DeletedAt == nil && s.WarehouseID == warehouseID {
			at := now
			s.DeletedAt = &at
		}
	}
	return nil
}

// WarehouseRepo repositorio de bodegas en memoria.
type WarehouseRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Warehouse
}

// NewWarehouseRepo construye el repo vacío.
func NewWarehouseRepo() *WarehouseRepo {
	return &WarehouseRepo{byID: make(map[string]*entity.Warehouse)}
}

func cloneWarehouse(w *entity.Warehouse) *entity.Warehouse {
	c := *w
	c.NotificationEmails = append([]string(nil), w.NotificationEmails...)
	return &c
}

func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[w.ID] = cloneWarehouse(w)
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok || w.DeletedAt != nil {
		return nil, nil
	}
	return cloneWarehouse(w), nil
}

func (r *WarehouseRepo) GetByCameraKey(id, apiKey string) (*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok || w.DeletedAt != nil || w.CameraAPIKey == "" || w.CameraAPIKey != apiKey {
		return nil, nil
	}
	return cloneWarehouse(w), nil
}

func (r *WarehouseRepo) ListByCompany(companyID string) ([]*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.byID {
		if w.DeletedAt == nil && w.CompanyID == companyID {
			out = append(out, cloneWarehouse(w))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (r *WarehouseRepo) ListAll() ([]*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.byID {
		if w.DeletedAt == nil {
			out = append(out, cloneWarehouse(w))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[w.ID]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrNotFound
	}
	r.byID[w.ID] = cloneWarehouse(w)
	return nil
}

func (r *WarehouseRepo) SetBlocked(id string, at *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrNotFound
	}
	stored.BlockedAt = at
	return nil
}

func (r *WarehouseRepo) SoftDelete(id string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrNotFound
	}
	at := now
	stored.DeletedAt = &at
	return nil
}

// NotificationRepo repositorio de notificaciones en memoria.
type NotificationRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Notification
	seq  []string
}

// NewNotificationRepo construye el repo vacío.
func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{byID: make(map[string]*entity.Notification)}
}

func (r *NotificationRepo) Create(n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *n
	r.byID[n.ID] = &c
	r.seq = append(r.seq, n.ID)
	return nil
}

func (r *NotificationRepo) GetByID(id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := *n
	return &c, nil
}

func (r *NotificationRepo) List(companyID string, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	// más recientes primero
	for i := len(r.seq) - 1; i >= 0; i-- {
		n := r.byID[r.seq[i]]
		if companyID != "" && n.CompanyID != companyID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		c := *n
		out = append(out, &c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *NotificationRepo) MarkRead(id, userID string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	if n.Read {
		return false, nil
	}
	n.Read = true
	n.ReadAt = &now
	n.ReadByUserID = &userID
	return true, nil
}

// ByType devuelve las notificaciones de un tipo (solo para asserts de tests).
func (r *NotificationRepo) ByType(t string) []*entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for _, id := range r.seq {
		if n := r.byID[id]; n.Type == t {
			c := *n
			out = append(out, &c)
		}
	}
	return out
}

// Tx implementa repository.TxRunner sin transacción real: ejecuta fn sobre los
// mismos repos en memoria.
type Tx struct {
	Items     repository.ItemRepository
	History   repository.HistoryRepository
	Supplies  repository.SupplyRepository
	Companies repository.CompanyRepository
	Users     repository.UserRepository
}

// Run ejecuta fn con los repos compartidos.
func (t *Tx) Run(fn func(r repository.TxRepos) error) error {
	return fn(repository.TxRepos{
		Items:     t.Items,
		History:   t.History,
		Supplies:  t.Supplies,
		Companies: t.Companies,
		Users:     t.Users,
	})
}

// CompanyRepo repositorio de empresas en memoria.
type CompanyRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Company
}

// NewCompanyRepo construye el repo vacío.
func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{byID: make(map[string]*entity.Company)}
}

func (r *CompanyRepo) Create(c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.DeletedAt == nil && existing.Name == c.Name {
			return domain.ErrConflict
		}
	}
	cc := *c
	r.byID[c.ID] = &cc
	return nil
}

func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *CompanyRepo) GetByName(name string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.DeletedAt == nil && c.Name == name {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

// NewUserRepo construye el repo vacío.
func NewUserRepo() *UserRepo {
	return &UserRepo{byID: make(map[string]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Permissions = append([]string(nil), u.Permissions...)
	return &c
}

func (r *UserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.DeletedAt == nil && existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.DeletedAt == nil && u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListByCompany(companyID string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.byID {
		if u.DeletedAt == nil && u.CompanyID == companyID {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Email < out[b].Email })
	return out, nil
}

func (r *UserRepo) SoftDelete(id string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok || u.DeletedAt != nil {
		return domain.ErrNotFound
	}
	at := now
	u.DeletedAt = &at
	return nil
}

// Los fakes deben seguir cumpliendo los puertos reales.
var (
	_ repository.ItemRepository         = (*ItemRepo)(nil)
	_ repository.HistoryRepository      = (*HistoryRepo)(nil)
	_ repository.SupplyRepository       = (*SupplyRepo)(nil)
	_ repository.WarehouseRepository    = (*WarehouseRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
	_ repository.CompanyRepository      = (*CompanyRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.TxRunner                = (*Tx)(nil)
)
