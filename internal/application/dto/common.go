package dto

// LimitQuery límite de resultados para listados (?limit=).
type LimitQuery struct {
	Limit int `query:"limit"`
}

// DefaultLimit aplica el valor por defecto si Limit está fuera de 1..100.
func (q *LimitQuery) DefaultLimit() {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje para el operador.
type MessageResponse struct {
	Message string `json:"message"`
}
