package applications

import "time"

// RequestIDPrefix + timestamp a precisión de segundo. La unicidad la
// garantiza el storage (constraint único sobre request_id): dos creaciones
// en el mismo segundo chocan ahí y salen como ErrConflict.
const RequestIDPrefix = "REQ-"

// GenerateRequestID produce el identificador legible de la solicitud.
// Se llama a lo sumo una vez por solicitud y el resultado se persiste
// inmutable.
func GenerateRequestID(now time.Time) string {
	return RequestIDPrefix + now.Format("20060102150405")
}
