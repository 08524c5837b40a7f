package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// PDFRenderer puerto hacia el generador del informe de stock en PDF.
type PDFRenderer interface {
	StockReport(warehouseName string, rows []StockRow) ([]byte, error)
}

// StockRow fila del informe de stock con el umbral efectivo ya resuelto.
type StockRow struct {
	Name     string
	Category string
	Unit     string
	Count    int
	LowLimit int
	Low      bool
}

// UseCase exportaciones de una bodega: items, suministros e historial en CSV y
// el informe de stock en PDF.
type UseCase struct {
	warehouses repository.WarehouseRepository
	items      repository.ItemRepository
	supplies   repository.SupplyRepository
	history    repository.HistoryRepository
	pdf        PDFRenderer
}

// NewUseCase construye el caso de uso de exportación.
func NewUseCase(warehouses repository.WarehouseRepository, items repository.ItemRepository, supplies repository.SupplyRepository, history repository.HistoryRepository, pdf PDFRenderer) *UseCase {
	return &UseCase{warehouses: warehouses, items: items, supplies: supplies, history: history, pdf: pdf}
}

func (uc *UseCase) guarded(p *entity.Principal, warehouseID string) (*entity.Warehouse, error) {
	if err := auth.RequireActive(p); err != nil {
		return nil, err
	}
	wh, err := uc.warehouses.GetByID(warehouseID)
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

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ItemsCSV exporta los items de la bodega.
func (uc *UseCase) ItemsCSV(p *entity.Principal, warehouseID string) ([]byte, error) {
	wh, err := uc.guarded(p, warehouseID)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.ListByWarehouse(wh.ID, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		rows = append(rows, []string{
			i.Name, i.Category, i.Unit,
			strconv.Itoa(i.Count),
			strconv.Itoa(i.EffectiveLowLimit(wh)),
			strconv.FormatBool(i.IsLow(wh)),
			i.CreatedAt.Format(time.RFC3339),
		})
	}
	return writeCSV([]string{"name", "category", "unit", "count", "low_limit", "low", "created_at"}, rows)
}

// SuppliesCSV exporta los suministros de la bodega.
func (uc *UseCase) SuppliesCSV(p *entity.Principal, warehouseID string) ([]byte, error) {
	wh, err := uc.guarded(p, warehouseID)
	if err != nil {
		return nil, err
	}
	supplies, err := uc.supplies.ListByWarehouse(wh.ID, repository.SupplyFilter{})
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rows := make([][]string, 0, len(supplies))
	for _, s := range supplies {
		rows = append(rows, []string{
			s.ItemName,
			strconv.Itoa(s.Amount),
			s.Status,
			s.ExpectedAt.Format(time.RFC3339),
			strconv.FormatBool(s.IsOverdue(now)),
			s.Note,
		})
	}
	return writeCSV([]string{"item", "amount", "status", "expected_at", "overdue", "note"}, rows)
}

// HistoryCSV exporta el historial de la bodega, más reciente primero.
func (uc *UseCase) HistoryCSV(p *entity.Principal, warehouseID string, limit int) ([]byte, error) {
	wh, err := uc.guarded(p, warehouseID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1000
	}
	entries, err := uc.history.ListByWarehouse(wh.ID, limit)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		byUser := ""
		if e.ByUserID != nil {
			byUser = *e.ByUserID
		}
		rows = append(rows, []string{
			e.TS.Format(time.RFC3339),
			e.ItemName,
			e.Type,
			strconv.Itoa(e.Amount),
			e.Note,
			byUser,
		})
	}
	return writeCSV([]string{"ts", "item", "type", "amount", "note", "by_user_id"}, rows)
}

// StockPDF genera el informe de stock de la bodega.
func (uc *UseCase) StockPDF(p *entity.Principal, warehouseID string) ([]byte, error) {
	wh, err := uc.guarded(p, warehouseID)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.ListByWarehouse(wh.ID, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([]StockRow, 0, len(items))
	for _, i := range items {
		rows = append(rows, StockRow{
			Name:     i.Name,
			Category: i.Category,
			Unit:     i.Unit,
			Count:    i.Count,
			LowLimit: i.EffectiveLowLimit(wh),
			Low:      i.IsLow(wh),
		})
	}
	return uc.pdf.StockReport(wh.Name, rows)
}
