package handlers

import (
	xhttp "github.com/dukani/credit-ledger/pkg/http"
)

type HealthService interface {
	Get() error
}

type HealthHandler struct {
	svc HealthService
}

func RegisterHealthRoutes(r *xhttp.Router, h *HealthHandler) {
	r.GET("/health", h.GetHealth)
}

func NewHealthHandler(svc HealthService) *HealthHandler {
	return &HealthHandler{
		svc: svc,
	}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	if err := h.svc.Get(); err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.Response.SetBodyString("success")
}
