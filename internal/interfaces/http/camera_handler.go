package http

import (
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/camera"
	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/pkg/logger"
)

// CameraHandler expone la ingesta de cámaras en dos bindings sobre el mismo
// caso de uso: POST one-shot y stream websocket. Las cámaras no usan JWT;
// se autentican con la api key de su bodega en cada mensaje.
type CameraHandler struct {
	uc  *camera.UseCase
	log *logger.Logger
}

// NewCameraHandler construye el handler.
func NewCameraHandler(uc *camera.UseCase, log *logger.Logger) *CameraHandler {
	return &CameraHandler{uc: uc, log: log}
}

// Detect godoc
// @Summary      Ingesta one-shot de detecciones de cámara
// @Description  Reconcilia conteos absolutos contra el stock de la bodega.
// @Tags         camera
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CameraDetectRequest  true  "Credenciales y detecciones"
// @Success      200   {object}  dto.CameraResult
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse  "bodega bloqueada"
// @Router       /api/camera [post]
func (h *CameraHandler) Detect(c *fiber.Ctx) error {
	var in dto.CameraDetectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Detect(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpgradeRequired deja pasar solo upgrades websocket hacia el stream de cámara.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream maneja el binding websocket: el primer mensaje trae las credenciales
// (dto.CameraDetectRequest) y los siguientes pueden omitirlas; cada lote se
// responde con un dto.CameraWSMessage. Las credenciales se reverifican por
// lote para que un bloqueo de bodega corte el stream en caliente. La semántica
// de reconciliación es exactamente la del binding HTTP; solo cambia el transporte.
func (h *CameraHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		warehouseID := conn.Params("id")
		var creds dto.CameraAuth
		for {
			var in dto.CameraDetectRequest
			if err := conn.ReadJSON(&in); err != nil {
				return
			}
			if in.Auth.WarehouseID == "" {
				in.Auth.WarehouseID = warehouseID
			}
			if in.Auth.APIKey == "" {
				in.Auth = creds
			}
			out, err := h.uc.Detect(in)
			if err != nil {
				msg := dto.CameraWSMessage{OK: false, Error: wsErrorCode(err)}
				if werr := conn.WriteJSON(msg); werr != nil {
					return
				}
				// Credenciales inválidas cierran el stream; errores transitorios no.
				if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrForbidden) {
					return
				}
				continue
			}
			creds = in.Auth
			if err := conn.WriteJSON(dto.CameraWSMessage{OK: true, Warehouse: out.Warehouse}); err != nil {
				return
			}
		}
	})
}

func wsErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return "blocked"
	default:
		return "internal"
	}
}
