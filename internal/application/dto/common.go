package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AuthCheckResponse resultado de GET /auth/user-auth y /auth/admin-auth.
// Es transitorio: el cliente no lo guarda más allá de una evaluación del gate.
type AuthCheckResponse struct {
	OK bool `json:"ok"`
}
