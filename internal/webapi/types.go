package webapi

import "github.com/spboyer/cotboard/internal/models"

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ModelsResponse lists the published models.
type ModelsResponse struct {
	Models []models.Model `json:"models"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
