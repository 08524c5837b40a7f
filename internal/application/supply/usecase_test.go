package supply_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/inventory"
	"github.com/invorya/bodega-api/internal/application/notification"
	"github.com/invorya/bodega-api/internal/application/supply"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
	"github.com/invorya/bodega-api/internal/testsupport/memrepo"
	"github.com/invorya/bodega-api/pkg/logger"
)

type noopMailer struct{}

func (noopMailer) SendLowStockEmail(to []string, itemName string, count, lowLimit int, warehouseName string) error {
	return nil
}

type supplyFixture struct {
	uc       *supply.UseCase
	items    *memrepo.ItemRepo
	history  *memrepo.HistoryRepo
	supplies *memrepo.SupplyRepo
	notifs   *memrepo.NotificationRepo
	wh       *entity.Warehouse
	item     *entity.Item
	operator *entity.Principal
}

func newSupplyFixture(t *testing.T) *supplyFixture {
	t.Helper()
	items := memrepo.NewItemRepo()
	history := memrepo.NewHistoryRepo(items)
	supplies := memrepo.NewSupplyRepo(items)
	warehouses := memrepo.NewWarehouseRepo()
	notifs := memrepo.NewNotificationRepo()
	dispatcher := notification.NewDispatcher(notifs, noopMailer{}, logger.Nop())
	monitor := inventory.NewMonitor(items, dispatcher, logger.Nop())
	tx := &memrepo.Tx{Items: items, History: history, Supplies: supplies}

	wh := &entity.Warehouse{ID: "w1", CompanyID: "c1", Name: "Central", LowStockDefault: 2}
	require.NoError(t, warehouses.Create(wh))
	item := &entity.Item{ID: "i1", WarehouseID: "w1", Name: "tornillos", Unit: "caja", Count: 10}
	require.NoError(t, items.Create(item))

	return &supplyFixture{
		uc:       supply.NewUseCase(tx, supplies, items, warehouses, monitor, dispatcher),
		items:    items,
		history:  history,
		supplies: supplies,
		notifs:   notifs,
		wh:       wh,
		item:     item,
		operator: &entity.Principal{ID: "u1", CompanyID: "c1", Permissions: []string{
			entity.PermSuppliesCreate, entity.PermSuppliesUpdate,
		}},
	}
}

func (f *supplyFixture) create(t *testing.T, expectedAt time.Time, amount int) *dto.SupplyResponse {
	t.Helper()
	resp, err := f.uc.Create(f.operator, dto.CreateSupplyRequest{
		WarehouseID: "w1", ItemID: "i1", Amount: amount, ExpectedAt: expectedAt,
	})
	require.NoError(t, err)
	return resp
}

func TestSupplyCreate_EnWaitingConNotificacion(t *testing.T) {
	f := newSupplyFixture(t)
	resp := f.create(t, time.Now().Add(48*time.Hour), 7)

	assert.Equal(t, entity.SupplyWaiting, resp.Status)
	assert.False(t, resp.Overdue)
	assert.Equal(t, "tornillos", resp.ItemName)
	assert.Len(t, f.notifs.ByType(entity.NotifSupplyCreated), 1)
	// crear el suministro no toca el stock
	got, err := f.items.GetByID("i1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Count)
}

func TestSupplyCreate_ItemDeOtraBodegaEsNotFound(t *testing.T) {
	f := newSupplyFixture(t)
	_, err := f.uc.Create(f.operator, dto.CreateSupplyRequest{
		WarehouseID: "w1", ItemID: "no-existe", Amount: 1, ExpectedAt: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplyDone_AcreditaStockYLedgerUnaVez(t *testing.T) {
	f := newSupplyFixture(t)
	created := f.create(t, time.Now().Add(48*time.Hour), 7)

	resp, err := f.uc.SetStatus(f.operator, dto.UpdateSupplyStatusRequest{SupplyID: created.ID, Status: entity.SupplyDone})
	require.NoError(t, err)
	assert.Equal(t, entity.SupplyDone, resp.Status)

	got, err := f.items.GetByID("i1")
	require.NoError(t, err)
	assert.Equal(t, 17, got.Count)

	entries := f.history.All()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.HistoryIncome, entries[0].Type)
	assert.Equal(t, 7, entries[0].Amount)
	assert.Equal(t, "auto from supply", entries[0].Note)
	assert.Len(t, f.notifs.ByType(entity.NotifSupplyStatus), 1)
}

func TestSupplyDone_RepetidoEsInvalidTransitionSinDobleCredito(t *testing.T) {
	f := newSupplyFixture(t)
	created := f.create(t, time.Now().Add(48*time.Hour), 7)

	_, err := f.uc.SetStatus(f.operator, dto.UpdateSupplyStatusRequest{SupplyID: created.ID, Status: entity.SupplyDone})
	require.NoError(t, err)
	_, err = f.uc.SetStatus(f.operator, dto.UpdateSupplyStatusRequest{SupplyID: created.ID, Status: entity.SupplyDone})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := f.items.GetByID("i1")
	require.NoError(t, err)
	assert.Equal(t, 17, got.Count, "el segundo done no debe acreditar de nuevo")
	assert.Len(t, f.history.All(), 1)
}

func TestSupplyCanceled_NoAcredita(t *testing.T) {
	f := newSupplyFixture(t)
	created := f.create(t, time.Now().Add(48*time.Hour), 7)

	_, err := f.uc.SetStatus(f.operator, dto.UpdateSupplyStatusRequest{SupplyID: created.ID, Status: entity.SupplyCanceled})
	require.NoError(t, err)

	got, err := f.items.GetByID("i1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Count)
	assert.Empty(t, f.history.All())

	// un canceled tampoco se reabre ni se cierra como done
	_, err = f.uc.SetStatus(f.operator, dto.UpdateSupplyStatusRequest{SupplyID: created.ID, Status: entity.SupplyDone})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSupplySetStatus_EstadoInvalido(t *testing.T) {
	f := newSupplyFixture(t)
	created := f.create(t, time.Now().Add(48*time.Hour), 7)

	for _, status := range []string{"waiting", "reopened", ""} {
		_, err := f.uc.SetStatus(f.operator, dto.UpdateSupplyStatusRequest{SupplyID: created.ID, Status: status})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, status)
	}
}

func TestSupplyList_VencidoPerezosoConDedup(t *testing.T) {
	f := newSupplyFixture(t)
	f.create(t, time.Now().Add(-24*time.Hour), 3)

	list, err := f.uc.List(f.operator, "w1", repository.SupplyFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Overdue)
	assert.Equal(t, entity.SupplyWaiting, list[0].Status, "vencido no cambia el estado")
	assert.Len(t, f.notifs.ByType(entity.NotifSupplyOverdue), 1)

	// segundo listado: sigue overdue pero sin nueva notificación
	list, err = f.uc.List(f.operator, "w1", repository.SupplyFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Overdue)
	assert.Len(t, f.notifs.ByType(entity.NotifSupplyOverdue), 1)
}

func TestSupplyList_BusquedaCaseFolding(t *testing.T) {
	f := newSupplyFixture(t)
	f.create(t, time.Now().Add(48*time.Hour), 3)

	list, err := f.uc.List(f.operator, "w1", repository.SupplyFilter{Search: "TORNI"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = f.uc.List(f.operator, "w1", repository.SupplyFilter{Search: "clavos"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSupplyDone_BajoUmbralNoNotificaPorSubida(t *testing.T) {
	// acreditar stock sube el count; si supera el umbral debe re-armar el flag
	f := newSupplyFixture(t)
	require.NoError(t, f.items.SetCount("i1", 1))
	_, err := f.items.MarkLowNotified("i1", time.Now().UTC())
	require.NoError(t, err)

	created := f.create(t, time.Now().Add(48*time.Hour), 10)
	_, err = f.uc.SetStatus(f.operator, dto.UpdateSupplyStatusRequest{SupplyID: created.ID, Status: entity.SupplyDone})
	require.NoError(t, err)

	got, err := f.items.GetByID("i1")
	require.NoError(t, err)
	assert.Equal(t, 11, got.Count)
	assert.Nil(t, got.LowNotifiedAt, "superar el umbral re-arma el disparador")
	assert.Empty(t, f.notifs.ByType(entity.NotifLowStock))
}
