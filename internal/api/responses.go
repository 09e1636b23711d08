// Package api holds the response envelopes and request validation shared by
// every handler package.
package api

type ErrorResponse struct {
	Error string `json:"error" example:"not enough points for this prize"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
