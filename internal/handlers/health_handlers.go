package handlers

import (
	"context"
	"net/http"

	"neuronex/internal/logger"
)

type HealthHandler struct {
	checker interface {
		HealthCheck(ctx context.Context) error
	}
}

func NewHealthHandler(checker interface {
	HealthCheck(ctx context.Context) error
}) HealthHandler {
	return HealthHandler{checker: checker}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.checker.HealthCheck(r.Context()); err != nil {
		responseWithJSON(w, http.StatusServiceUnavailable, toPayload("status", "unhealthy"))
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}
