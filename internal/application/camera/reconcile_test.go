package camera_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/application/camera"
	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/inventory"
	"github.com/invorya/bodega-api/internal/application/notification"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/testsupport/memrepo"
	"github.com/invorya/bodega-api/pkg/logger"
)

type noopMailer struct{}

func (noopMailer) SendLowStockEmail(to []string, itemName string, count, lowLimit int, warehouseName string) error {
	return nil
}

type cameraFixture struct {
	uc         *camera.UseCase
	items      *memrepo.ItemRepo
	history    *memrepo.HistoryRepo
	warehouses *memrepo.WarehouseRepo
	notifs     *memrepo.NotificationRepo
	wh         *entity.Warehouse
	auth       dto.CameraAuth
}

func newCameraFixture(t *testing.T) *cameraFixture {
	t.Helper()
	items := memrepo.NewItemRepo()
	history := memrepo.NewHistoryRepo(items)
	supplies := memrepo.NewSupplyRepo(items)
	warehouses := memrepo.NewWarehouseRepo()
	companies := memrepo.NewCompanyRepo()
	notifs := memrepo.NewNotificationRepo()
	dispatcher := notification.NewDispatcher(notifs, noopMailer{}, logger.Nop())
	monitor := inventory.NewMonitor(items, dispatcher, logger.Nop())
	tx := &memrepo.Tx{Items: items, History: history, Supplies: supplies}

	require.NoError(t, companies.Create(&entity.Company{ID: "c1", Name: "ACME"}))
	wh := &entity.Warehouse{ID: "w1", CompanyID: "c1", Name: "Central", LowStockDefault: 2, CameraAPIKey: "key-123"}
	require.NoError(t, warehouses.Create(wh))

	return &cameraFixture{
		uc:         camera.NewUseCase(tx, warehouses, companies, monitor, logger.Nop()),
		items:      items,
		history:    history,
		warehouses: warehouses,
		notifs:     notifs,
		wh:         wh,
		auth:       dto.CameraAuth{Company: "ACME", WarehouseID: "w1", APIKey: "key-123"},
	}
}

func (f *cameraFixture) detect(t *testing.T, detections ...dto.CameraDetection) *dto.CameraResult {
	t.Helper()
	res, err := f.uc.Detect(dto.CameraDetectRequest{
		Auth:    f.auth,
		Payload: dto.CameraDetectPayload{Detect: detections},
	})
	require.NoError(t, err)
	return res
}

func TestCameraAuthenticate_CredencialesInvalidas(t *testing.T) {
	f := newCameraFixture(t)

	_, err := f.uc.Authenticate(dto.CameraAuth{Company: "ACME", WarehouseID: "w1", APIKey: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// la key correcta con el nombre de empresa equivocado tampoco pasa
	_, err = f.uc.Authenticate(dto.CameraAuth{Company: "OtraEmpresa", WarehouseID: "w1", APIKey: "key-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.uc.Authenticate(dto.CameraAuth{Company: "ACME", WarehouseID: "w1"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCameraAuthenticate_BodegaBloqueadaEsForbidden(t *testing.T) {
	f := newCameraFixture(t)
	now := time.Now().UTC()
	require.NoError(t, f.warehouses.SetBlocked("w1", &now))

	_, err := f.uc.Authenticate(f.auth)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCameraReconcile_PrimerAvistamientoCreaItem(t *testing.T) {
	f := newCameraFixture(t)

	res := f.detect(t, dto.CameraDetection{Type: "caja", Count: 5})
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, "Central", res.Warehouse)

	item, err := f.items.GetByName("w1", "caja")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, entity.AutoCategory, item.Category)
	assert.Equal(t, entity.AutoUnit, item.Unit)
	assert.Equal(t, 5, item.Count)

	entries := f.history.All()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.HistoryCameraUpdate, entries[0].Type)
	assert.Equal(t, 5, entries[0].Amount)
	assert.Nil(t, entries[0].ByUserID, "las entradas de cámara no tienen autor")
}

func TestCameraReconcile_ConteoAbsolutoRegistraDelta(t *testing.T) {
	f := newCameraFixture(t)
	f.detect(t, dto.CameraDetection{Type: "caja", Count: 5})

	res := f.detect(t, dto.CameraDetection{Type: "caja", Count: 2})
	assert.Equal(t, 1, res.Updated)

	item, err := f.items.GetByName("w1", "caja")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Count)

	entries := f.history.All()
	require.Len(t, entries, 2)
	// la segunda entrada lleva el delta firmado contra el conteo anterior
	assert.Equal(t, entity.HistoryCameraUpdate, entries[1].Type)
	assert.Equal(t, -3, entries[1].Amount)
}

func TestCameraReconcile_MismoConteoEsNoOp(t *testing.T) {
	f := newCameraFixture(t)
	f.detect(t, dto.CameraDetection{Type: "caja", Count: 5})

	res := f.detect(t, dto.CameraDetection{Type: "caja", Count: 5})
	assert.Equal(t, 0, res.Updated, "reenviar el mismo lote es idempotente")
	assert.Len(t, f.history.All(), 1)
}

func TestCameraReconcile_DeteccionInvalidaSeIgnora(t *testing.T) {
	f := newCameraFixture(t)

	res := f.detect(t,
		dto.CameraDetection{Type: "", Count: 3},
		dto.CameraDetection{Type: "caja", Count: -1},
		dto.CameraDetection{Type: "palet", Count: 4},
	)
	assert.Equal(t, 1, res.Updated)
	assert.Len(t, f.history.All(), 1)
}

func TestCameraReconcile_StockBajoEdgeTriggered(t *testing.T) {
	// lowStockDefault=2: 5 -> 2 dispara; 2 -> 2 no repite; 6 re-arma; 1 dispara de nuevo
	f := newCameraFixture(t)

	f.detect(t, dto.CameraDetection{Type: "caja", Count: 5})
	assert.Empty(t, f.notifs.ByType(entity.NotifLowStock))

	f.detect(t, dto.CameraDetection{Type: "caja", Count: 2})
	assert.Len(t, f.notifs.ByType(entity.NotifLowStock), 1)

	f.detect(t, dto.CameraDetection{Type: "caja", Count: 2})
	assert.Len(t, f.notifs.ByType(entity.NotifLowStock), 1)

	f.detect(t, dto.CameraDetection{Type: "caja", Count: 6})
	f.detect(t, dto.CameraDetection{Type: "caja", Count: 1})
	assert.Len(t, f.notifs.ByType(entity.NotifLowStock), 2)
}
