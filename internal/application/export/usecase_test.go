package export_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/application/export"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/testsupport/memrepo"
)

type fakePDF struct{ rows []export.StockRow }

func (f *fakePDF) StockReport(warehouseName string, rows []export.StockRow) ([]byte, error) {
	f.rows = rows
	return []byte("%PDF-fake"), nil
}

func newExportFixture(t *testing.T) (*export.UseCase, *fakePDF, *entity.Principal) {
	t.Helper()
	items := memrepo.NewItemRepo()
	warehouses := memrepo.NewWarehouseRepo()
	supplies := memrepo.NewSupplyRepo(items)
	history := memrepo.NewHistoryRepo(items)
	pdf := &fakePDF{}

	require.NoError(t, warehouses.Create(&entity.Warehouse{ID: "w1", CompanyID: "c1", Name: "Central", LowStockDefault: 2}))
	require.NoError(t, items.Create(&entity.Item{ID: "i1", WarehouseID: "w1", Name: "tornillos", Category: "ferretería", Unit: "caja", Count: 1}))
	require.NoError(t, items.Create(&entity.Item{ID: "i2", WarehouseID: "w1", Name: "palets", Count: 40}))

	uc := export.NewUseCase(warehouses, items, supplies, history, pdf)
	return uc, pdf, &entity.Principal{ID: "u1", CompanyID: "c1", Permissions: []string{"*"}}
}

func TestItemsCSV_CabeceraYUmbralEfectivo(t *testing.T) {
	uc, _, p := newExportFixture(t)

	out, err := uc.ItemsCSV(p, "w1")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "category", "unit", "count", "low_limit", "low", "created_at"}, records[0])
	// orden por nombre: palets, tornillos
	assert.Equal(t, "palets", records[1][0])
	assert.Equal(t, "false", records[1][5])
	assert.Equal(t, "tornillos", records[2][0])
	assert.Equal(t, "2", records[2][4], "sin low_limit propio rige el default de la bodega")
	assert.Equal(t, "true", records[2][5])
}

func TestStockPDF_FilasResueltas(t *testing.T) {
	uc, pdf, p := newExportFixture(t)

	out, err := uc.StockPDF(p, "w1")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	require.Len(t, pdf.rows, 2)
	assert.True(t, pdf.rows[1].Low)
}

func TestExport_OtraEmpresaForbidden(t *testing.T) {
	uc, _, _ := newExportFixture(t)
	intruso := &entity.Principal{ID: "u2", CompanyID: "c2", Permissions: []string{"*"}}
	_, err := uc.ItemsCSV(intruso, "w1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
