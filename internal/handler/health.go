package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kube-rca/llm-service/internal/model"
	"github.com/kube-rca/llm-service/internal/service"
)

type HealthHandler struct {
	state service.State
}

func NewHealthHandler(state service.State) *HealthHandler {
	return &HealthHandler{state: state}
}

// Health godoc
// @Summary Model load status
// @Description Always 200. error is present only when the model failed to load.
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Status())
}

// Ready godoc
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} model.ReadyResponse
// @Failure 503 {object} model.ReadyResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.state.Loaded {
		c.JSON(http.StatusServiceUnavailable, model.ReadyResponse{Status: "not ready", Reason: h.state.LoadError})
		return
	}
	c.JSON(http.StatusOK, model.ReadyResponse{Status: "ready"})
}
