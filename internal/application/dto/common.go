package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse respuesta simple para operaciones sin cuerpo.
type SuccessResponse struct {
	Success bool `json:"success"`
}
