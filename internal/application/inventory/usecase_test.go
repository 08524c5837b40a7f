package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/inventory"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
	"github.com/invorya/bodega-api/internal/testsupport/memrepo"
	"github.com/invorya/bodega-api/pkg/logger"
)

type itemFixture struct {
	uc         *inventory.ItemUseCase
	items      *memrepo.ItemRepo
	history    *memrepo.HistoryRepo
	warehouses *memrepo.WarehouseRepo
	notifier   *recordingNotifier
	wh         *entity.Warehouse
	operator   *entity.Principal
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()
	items := memrepo.NewItemRepo()
	history := memrepo.NewHistoryRepo(items)
	supplies := memrepo.NewSupplyRepo(items)
	warehouses := memrepo.NewWarehouseRepo()
	notifier := &recordingNotifier{}
	monitor := inventory.NewMonitor(items, notifier, logger.Nop())
	tx := &memrepo.Tx{Items: items, History: history, Supplies: supplies}

	wh := &entity.Warehouse{ID: "w1", CompanyID: "c1", Name: "Central", LowStockDefault: 2}
	require.NoError(t, warehouses.Create(wh))

	return &itemFixture{
		uc:         inventory.NewItemUseCase(tx, items, history, warehouses, monitor),
		items:      items,
		history:    history,
		warehouses: warehouses,
		notifier:   notifier,
		wh:         wh,
		operator: &entity.Principal{ID: "u1", CompanyID: "c1", Permissions: []string{
			entity.PermItemsCreate, entity.PermItemsUpdate, entity.PermItemsOp,
		}},
	}
}

func TestItemCreate_EscribeEntradaDeLedger(t *testing.T) {
	f := newItemFixture(t)

	resp, err := f.uc.Create(f.operator, dto.CreateItemRequest{
		WarehouseID: "w1", Name: "tornillos", Category: "ferretería", Unit: "caja", Count: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Count)

	entries := f.history.All()
	require.Len(t, entries, 1)
	// con stock inicial el alta se registra como ingreso, no como create
	assert.Equal(t, entity.HistoryIncome, entries[0].Type)
	assert.Equal(t, 10, entries[0].Amount)
	assert.Equal(t, resp.ID, entries[0].ItemID)
	require.NotNil(t, entries[0].ByUserID)
	assert.Equal(t, "u1", *entries[0].ByUserID)
}

func TestItemCreate_SinStockInicialRegistraCreate(t *testing.T) {
	f := newItemFixture(t)

	resp, err := f.uc.Create(f.operator, dto.CreateItemRequest{
		WarehouseID: "w1", Name: "tuercas", Unit: "caja", Count: 0,
	})
	require.NoError(t, err)

	entries := f.history.All()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.HistoryCreate, entries[0].Type)
	assert.Equal(t, 0, entries[0].Amount)
	assert.Equal(t, resp.ID, entries[0].ItemID)
}

func TestItemCreate_NombreDuplicadoEsConflict(t *testing.T) {
	f := newItemFixture(t)

	_, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 1})
	require.NoError(t, err)
	_, err = f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 3})
	assert.ErrorIs(t, err, domain.ErrConflict)
	// el duplicado rechazado no deja rastro en el ledger
	assert.Len(t, f.history.All(), 1)
}

func TestItemOps_LedgerCompletoPorMutacion(t *testing.T) {
	f := newItemFixture(t)

	created, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 10})
	require.NoError(t, err)

	_, err = f.uc.Income(f.operator, dto.ItemOpRequest{ItemID: created.ID, Amount: 5})
	require.NoError(t, err)
	resp, err := f.uc.Outcome(f.operator, dto.ItemOpRequest{ItemID: created.ID, Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Count)

	// exactamente una entrada por mutación aceptada
	entries := f.history.All()
	require.Len(t, entries, 3)
	amounts := map[string]int{}
	for _, e := range entries {
		amounts[e.Type] = e.Amount
	}
	assert.Equal(t, 5, amounts[entity.HistoryIncome])
	assert.Equal(t, -3, amounts[entity.HistoryOutcome])
}

func TestItemOutcome_InsuficienteSeRechazaSinRecortar(t *testing.T) {
	f := newItemFixture(t)

	created, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 4})
	require.NoError(t, err)

	_, err = f.uc.Outcome(f.operator, dto.ItemOpRequest{ItemID: created.ID, Amount: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.items.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Count, "la mutación rechazada no debe tocar el count")
	assert.Len(t, f.history.All(), 1, "la mutación rechazada no deja entrada en el ledger")
}

func TestItemOps_MontoNoPositivoEsInvalido(t *testing.T) {
	f := newItemFixture(t)
	created, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 4})
	require.NoError(t, err)

	_, err = f.uc.Income(f.operator, dto.ItemOpRequest{ItemID: created.ID, Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Outcome(f.operator, dto.ItemOpRequest{ItemID: created.ID, Amount: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemOps_OtraEmpresaEsForbidden(t *testing.T) {
	f := newItemFixture(t)
	created, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 4})
	require.NoError(t, err)

	intruso := &entity.Principal{ID: "u2", CompanyID: "c2", Permissions: []string{"*"}}
	_, err = f.uc.Income(intruso, dto.ItemOpRequest{ItemID: created.ID, Amount: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestItemOps_SinPermisoEsForbidden(t *testing.T) {
	f := newItemFixture(t)
	created, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 4})
	require.NoError(t, err)

	lector := &entity.Principal{ID: "u3", CompanyID: "c1", Permissions: []string{entity.PermItemsCreate}}
	_, err = f.uc.Outcome(lector, dto.ItemOpRequest{ItemID: created.ID, Amount: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestItemUpdate_SoloMetadataSinLedger(t *testing.T) {
	f := newItemFixture(t)
	created, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 10})
	require.NoError(t, err)

	nuevoNombre := "tornillos m8"
	resp, err := f.uc.Update(f.operator, dto.UpdateItemRequest{ItemID: created.ID, Name: &nuevoNombre})
	require.NoError(t, err)
	assert.Equal(t, "tornillos m8", resp.Name)
	assert.Equal(t, 10, resp.Count)
	assert.Len(t, f.history.All(), 1, "update de metadata no escribe historial")
}

func TestItemUpdate_BajarUmbralDispara(t *testing.T) {
	f := newItemFixture(t)
	created, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 5})
	require.NoError(t, err)
	require.Equal(t, 0, f.notifier.count())

	// subir el umbral por encima del count actual es un cruce
	umbral := 7
	_, err = f.uc.Update(f.operator, dto.UpdateItemRequest{ItemID: created.ID, LowLimit: &umbral})
	require.NoError(t, err)
	assert.Equal(t, 1, f.notifier.count())
}

func TestItemCreate_NaceBajoUmbralNotifica(t *testing.T) {
	f := newItemFixture(t)
	// LowStockDefault de la bodega = 2
	_, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "clavos", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, f.notifier.count())
}

func TestItemList_LowOnlyUsaUmbralEfectivo(t *testing.T) {
	f := newItemFixture(t)
	_, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "abundante", Count: 50})
	require.NoError(t, err)
	_, err = f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "justo", Count: 2})
	require.NoError(t, err)
	umbral := 10
	_, err = f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "propio", Count: 8, LowLimit: &umbral})
	require.NoError(t, err)

	list, err := f.uc.List(f.operator, "w1", repository.ItemFilter{LowOnly: true})
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, it := range list {
		names = append(names, it.Name)
	}
	assert.ElementsMatch(t, []string{"justo", "propio"}, names)
}

func TestItemCreate_BodegaBloqueadaRechaza(t *testing.T) {
	f := newItemFixture(t)
	now := time.Now().UTC()
	require.NoError(t, f.warehouses.SetBlocked(f.wh.ID, &now))

	_, err := f.uc.Create(f.operator, dto.CreateItemRequest{WarehouseID: "w1", Name: "tornillos", Count: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
