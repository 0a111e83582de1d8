package handler

import (
	"net/http"

	"github.com/centpay/paygate/infra/response"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	gatewayNames func() []string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(gatewayNames func() []string) *HealthHandler {
	return &HealthHandler{gatewayNames: gatewayNames}
}

// Health reports service liveness and the configured gateways
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Service is healthy", map[string]any{
		"status":   "ok",
		"gateways": h.gatewayNames(),
	})
}
