package inventory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/application/inventory"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/testsupport/memrepo"
	"github.com/invorya/bodega-api/pkg/logger"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string // item IDs notificados, en orden
}

func (n *recordingNotifier) DispatchLowStock(wh *entity.Warehouse, item *entity.Item, lowLimit int, byUserID *string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, item.ID)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func intPtr(v int) *int { return &v }

func TestMonitor_EdgeTriggered_UnSoloDisparoPorCruce(t *testing.T) {
	items := memrepo.NewItemRepo()
	notifier := &recordingNotifier{}
	monitor := inventory.NewMonitor(items, notifier, logger.Nop())

	wh := &entity.Warehouse{ID: "w1", CompanyID: "c1", Name: "Central", LowStockDefault: 2}
	item := &entity.Item{ID: "i1", WarehouseID: "w1", Name: "tornillos", Count: 10, LowLimit: intPtr(5)}
	require.NoError(t, items.Create(item))

	setCount := func(c int) *entity.Item {
		require.NoError(t, items.SetCount(item.ID, c))
		got, err := items.GetByID(item.ID)
		require.NoError(t, err)
		return got
	}

	// 10: por encima del umbral, nada
	monitor.Evaluate(wh, setCount(10), nil)
	assert.Equal(t, 0, notifier.count())

	// 10 -> 5: cruce, primer disparo
	monitor.Evaluate(wh, setCount(5), nil)
	assert.Equal(t, 1, notifier.count())

	// se mantiene en 5: sin nuevo disparo (dedup por flag)
	monitor.Evaluate(wh, setCount(5), nil)
	assert.Equal(t, 1, notifier.count())

	// 5 -> 6: sube por encima, se re-arma el disparador
	monitor.Evaluate(wh, setCount(6), nil)
	assert.Equal(t, 1, notifier.count())
	got, err := items.GetByID(item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LowNotifiedAt, "subir por encima del umbral debe limpiar el flag")

	// 6 -> 4: nuevo cruce, segundo disparo
	monitor.Evaluate(wh, setCount(4), nil)
	assert.Equal(t, 2, notifier.count())
}

func TestMonitor_UmbralEfectivo_DefaultDeBodega(t *testing.T) {
	items := memrepo.NewItemRepo()
	notifier := &recordingNotifier{}
	monitor := inventory.NewMonitor(items, notifier, logger.Nop())

	// sin low_limit propio: rige el default de la bodega (3)
	wh := &entity.Warehouse{ID: "w1", CompanyID: "c1", Name: "Central", LowStockDefault: 3}
	item := &entity.Item{ID: "i1", WarehouseID: "w1", Name: "cajas", Count: 4}
	require.NoError(t, items.Create(item))

	monitor.Evaluate(wh, item, nil)
	assert.Equal(t, 0, notifier.count())

	require.NoError(t, items.SetCount(item.ID, 3))
	got, err := items.GetByID(item.ID)
	require.NoError(t, err)
	monitor.Evaluate(wh, got, nil)
	assert.Equal(t, 1, notifier.count())
}

func TestMonitor_FlagConcurrente_GanaUnoSolo(t *testing.T) {
	// dos evaluaciones del mismo cruce compiten por el flag; solo una despacha
	items := memrepo.NewItemRepo()
	item := &entity.Item{ID: "i1", WarehouseID: "w1", Name: "tuercas", Count: 1, LowLimit: intPtr(5)}
	require.NoError(t, items.Create(item))

	won1, err := items.MarkLowNotified(item.ID, time.Now().UTC())
	require.NoError(t, err)
	won2, err := items.MarkLowNotified(item.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, won1)
	assert.False(t, won2)
}
