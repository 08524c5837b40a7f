package dto

// CameraAuth credenciales de una cámara: la api key de la bodega más el nombre de
// la empresa como defensa contra reutilización de keys entre bodegas reasignadas.
type CameraAuth struct {
	Company     string `json:"company"`
	WarehouseID string `json:"warehouse_id"`
	APIKey      string `json:"api_key"`
}

// CameraDetection conteo absoluto observado de un tipo de objeto.
type CameraDetection struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CameraDetectPayload lote de detecciones de un ciclo de inferencia.
type CameraDetectPayload struct {
	Detect []CameraDetection `json:"detect"`
}

// CameraDetectRequest body para POST /api/camera (binding one-shot).
type CameraDetectRequest struct {
	Auth    CameraAuth          `json:"auth"`
	Payload CameraDetectPayload `json:"payload"`
}

// CameraResult resumen de una reconciliación.
type CameraResult struct {
	OK        bool   `json:"ok"`
	Warehouse string `json:"warehouse"`
	Updated   int    `json:"updated"`
}

// CameraWSMessage respuesta genérica del stream websocket.
type CameraWSMessage struct {
	OK        bool   `json:"ok"`
	Warehouse string `json:"warehouse,omitempty"`
	Error     string `json:"error,omitempty"`
}
