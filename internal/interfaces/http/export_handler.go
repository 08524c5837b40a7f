package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/export"
)

// ExportHandler sirve exportaciones CSV y el reporte PDF de stock.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

func sendAttachment(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

// ItemsCSV godoc
// @Summary      Exportar items de la bodega en CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {string}  string
// @Router       /api/warehouses/{id}/export/items.csv [get]
func (h *ExportHandler) ItemsCSV(c *fiber.Ctx) error {
	data, err := h.uc.ItemsCSV(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, data, "text/csv; charset=utf-8", "items.csv")
}

// SuppliesCSV godoc
// @Summary      Exportar suministros de la bodega en CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {string}  string
// @Router       /api/warehouses/{id}/export/supplies.csv [get]
func (h *ExportHandler) SuppliesCSV(c *fiber.Ctx) error {
	data, err := h.uc.SuppliesCSV(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, data, "text/csv; charset=utf-8", "supplies.csv")
}

// HistoryCSV godoc
// @Summary      Exportar historial de la bodega en CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        id     path   string  true   "ID de la bodega"
// @Param        limit  query  int     false  "Máximo de entradas"
// @Success      200  {string}  string
// @Router       /api/warehouses/{id}/export/history.csv [get]
func (h *ExportHandler) HistoryCSV(c *fiber.Ctx) error {
	data, err := h.uc.HistoryCSV(GetPrincipal(c), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, data, "text/csv; charset=utf-8", "history.csv")
}

// StockPDF godoc
// @Summary      Reporte PDF de stock de la bodega
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {string}  binary
// @Router       /api/warehouses/{id}/export/stock.pdf [get]
func (h *ExportHandler) StockPDF(c *fiber.Ctx) error {
	data, err := h.uc.StockPDF(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, data, "application/pdf", "stock.pdf")
}
