package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/supply"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// SupplyHandler maneja las peticiones HTTP para suministros.
type SupplyHandler struct {
	uc *supply.UseCase
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(uc *supply.UseCase) *SupplyHandler {
	return &SupplyHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar suministro esperado
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyRequest  true  "Datos del suministro"
// @Success      201   {object}  dto.SupplyResponse
// @Failure      404   {object}  dto.ErrorResponse  "item fuera de la bodega"
// @Router       /api/supplies [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyRequest
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
// @Summary      Listar suministros de una bodega
// @Description  Marca perezosamente los vencidos y dispara su notificación (una sola vez).
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        status        query  string  false  "waiting|done|canceled|all"
// @Param        search        query  string  false  "Subcadena sobre item o nota"
// @Param        sort          query  string  false  "expected_at|created_at|updated_at|amount|status"
// @Param        desc          query  bool    false  "Orden descendente"
// @Success      200  {array}  dto.SupplyResponse
// @Router       /api/supplies [get]
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	f := repository.SupplyFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Desc:   c.QueryBool("desc"),
	}
	out, err := h.uc.List(GetPrincipal(c), warehouseID, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Cerrar suministro (done acredita stock, canceled no)
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSupplyStatusRequest  true  "Suministro y estado final"
// @Success      200   {object}  dto.SupplyResponse
// @Failure      409   {object}  dto.ErrorResponse  "ya está en estado terminal"
// @Router       /api/supplies/status [post]
func (h *SupplyHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UpdateSupplyStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetStatus(GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
