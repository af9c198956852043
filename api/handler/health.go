package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/techgit41/Advanced-Todo-App/internal/infrastructure/monitor"
	"github.com/techgit41/Advanced-Todo-App/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Liveness probe
// @Tags health
// @Router /api/health [get]
//
// Always answers 200: the server keeps serving stateless endpoints even when
// the document store is unreachable. The per-service status lets operators
// see the degradation.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"message":   "server is running",
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"mongodb":     status.MongoDB,
			"subscribers": status.Subscribers,
		},
	})
}
