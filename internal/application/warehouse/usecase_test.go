package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/warehouse"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/testsupport/memrepo"
)

type warehouseFixture struct {
	uc         *warehouse.UseCase
	warehouses *memrepo.WarehouseRepo
	items      *memrepo.ItemRepo
	supplies   *memrepo.SupplyRepo
	history    *memrepo.HistoryRepo
	admin      *entity.Principal
}

func newWarehouseFixture(t *testing.T) *warehouseFixture {
	t.Helper()
	items := memrepo.NewItemRepo()
	f := &warehouseFixture{
		warehouses: memrepo.NewWarehouseRepo(),
		items:      items,
		supplies:   memrepo.NewSupplyRepo(items),
		history:    memrepo.NewHistoryRepo(items),
		admin:      &entity.Principal{ID: "u1", CompanyID: "c1", Permissions: []string{"*"}},
	}
	f.uc = warehouse.NewUseCase(f.warehouses, f.items, f.supplies, f.history)
	return f
}

func TestWarehouseCreate_GeneraCameraKeyUnaVez(t *testing.T) {
	f := newWarehouseFixture(t)

	created, err := f.uc.Create(f.admin, dto.CreateWarehouseRequest{Name: "Central", LowStockDefault: 2})
	require.NoError(t, err)
	assert.Len(t, created.CameraAPIKey, 64, "32 bytes aleatorios en hex")
	assert.Equal(t, "c1", created.CompanyID)

	// los listados no vuelven a exponer la key
	list, err := f.uc.List(f.admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].CameraAPIKey)
}

func TestWarehouseList_AislamientoPorEmpresa(t *testing.T) {
	f := newWarehouseFixture(t)
	_, err := f.uc.Create(f.admin, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	otro := &entity.Principal{ID: "u2", CompanyID: "c2", Permissions: []string{"*"}}
	_, err = f.uc.Create(otro, dto.CreateWarehouseRequest{Name: "Sur"})
	require.NoError(t, err)

	list, err := f.uc.List(f.admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Central", list[0].Name)

	root := &entity.Principal{ID: "root", IsRoot: true}
	all, err := f.uc.List(root)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWarehouseSetBlocked_SoloRoot(t *testing.T) {
	f := newWarehouseFixture(t)
	created, err := f.uc.Create(f.admin, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)

	err = f.uc.SetBlocked(f.admin, created.ID, true)
	assert.ErrorIs(t, err, domain.ErrForbidden, "ni el comodín de permisos habilita el bloqueo")

	root := &entity.Principal{ID: "root", IsRoot: true}
	require.NoError(t, f.uc.SetBlocked(root, created.ID, true))
	got, err := f.warehouses.GetByID(created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.BlockedAt)

	require.NoError(t, f.uc.SetBlocked(root, created.ID, false))
	got, err = f.warehouses.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.BlockedAt)
}

func TestWarehouseDelete_CascadeSoft(t *testing.T) {
	f := newWarehouseFixture(t)
	created, err := f.uc.Create(f.admin, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	require.NoError(t, f.items.Create(&entity.Item{ID: "i1", WarehouseID: created.ID, Name: "tornillos", Count: 3}))
	require.NoError(t, f.supplies.Create(&entity.Supply{ID: "s1", WarehouseID: created.ID, ItemID: "i1", Amount: 1, Status: entity.SupplyWaiting}))
	require.NoError(t, f.history.Append(&entity.HistoryEntry{ID: "h1", ItemID: "i1", WarehouseID: created.ID, Type: entity.HistoryIncome, Amount: 3}))

	require.NoError(t, f.uc.Delete(f.admin, created.ID))

	wh, err := f.warehouses.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, wh)
	item, err := f.items.GetByID("i1")
	require.NoError(t, err)
	assert.Nil(t, item)
	s, err := f.supplies.GetByID("s1")
	require.NoError(t, err)
	assert.Nil(t, s)
	entries, err := f.history.ListByWarehouse(created.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWarehouseUpdate_OtraEmpresaForbidden(t *testing.T) {
	f := newWarehouseFixture(t)
	created, err := f.uc.Create(f.admin, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)

	intruso := &entity.Principal{ID: "u2", CompanyID: "c2", Permissions: []string{"*"}}
	nombre := "Robada"
	_, err = f.uc.Update(intruso, created.ID, dto.UpdateWarehouseRequest{Name: &nombre})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestWarehouseCreate_RootNecesitaEmpresaExplicita(t *testing.T) {
	f := newWarehouseFixture(t)
	root := &entity.Principal{ID: "r1", IsRoot: true}

	_, err := f.uc.Create(root, dto.CreateWarehouseRequest{Name: "Norte"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "root sin empresa dueña no puede crear")

	created, err := f.uc.Create(root, dto.CreateWarehouseRequest{Name: "Norte", CompanyID: "c2"})
	require.NoError(t, err)
	assert.Equal(t, "c2", created.CompanyID)
}

func TestWarehouseCreate_NoRootNoPuedeElegirEmpresa(t *testing.T) {
	f := newWarehouseFixture(t)

	_, err := f.uc.Create(f.admin, dto.CreateWarehouseRequest{Name: "Ajena", CompanyID: "c2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// indicar la propia empresa es redundante pero válido
	created, err := f.uc.Create(f.admin, dto.CreateWarehouseRequest{Name: "Propia", CompanyID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "c1", created.CompanyID)
}
