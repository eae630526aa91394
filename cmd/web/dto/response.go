package dto

// ErrorResponseDTO is the common JSON error body.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"could not load articles"`
}

// HealthDTO is the /health answer.
type HealthDTO struct {
	Status  string `json:"status" example:"ok"`
	Backend string `json:"backend,omitempty" example:"down"`
	Error   string `json:"error,omitempty"`
}
