package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/inventory"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// ItemHandler maneja las peticiones HTTP para items y su historial.
type ItemHandler struct {
	uc *inventory.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar items de una bodega
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        search        query  string  false  "Subcadena del nombre"
// @Param        category      query  string  false  "Categoría exacta"
// @Param        low_only      query  bool    false  "Solo items bajo su umbral"
// @Param        sort          query  string  false  "name|count|category|created_at|updated_at"
// @Param        desc          query  bool    false  "Orden descendente"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	f := repository.ItemFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		LowOnly:  c.QueryBool("low_only"),
		Sort:     c.Query("sort"),
		Desc:     c.QueryBool("desc"),
	}
	out, err := h.uc.List(GetPrincipal(c), warehouseID, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar metadata de un item
// @Description  El count no se toca aquí; usa income/outcome o la cámara.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/update [post]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Income godoc
// @Summary      Ingreso de stock
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemOpRequest  true  "Item y cantidad (positiva)"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/income [post]
func (h *ItemHandler) Income(c *fiber.Ctx) error {
	var in dto.ItemOpRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Income(GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Outcome godoc
// @Summary      Egreso de stock
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemOpRequest  true  "Item y cantidad (positiva)"
// @Success      200   {object}  dto.ItemResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/items/outcome [post]
func (h *ItemHandler) Outcome(c *fiber.Ctx) error {
	var in dto.ItemOpRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Outcome(GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de un item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del item"
// @Param        limit  query  int     false  "Máximo de entradas"  default(100)
// @Success      200  {array}  dto.HistoryEntryResponse
// @Router       /api/items/{id}/history [get]
func (h *ItemHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.HistoryByItem(GetPrincipal(c), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WarehouseHistory godoc
// @Summary      Historial de movimientos de una bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la bodega"
// @Param        limit  query  int     false  "Máximo de entradas"  default(100)
// @Success      200  {array}  dto.HistoryEntryResponse
// @Router       /api/warehouses/{id}/history [get]
func (h *ItemHandler) WarehouseHistory(c *fiber.Ctx) error {
	out, err := h.uc.HistoryByWarehouse(GetPrincipal(c), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
