// README: No-show risk handlers for single trips and the open backlog.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medtransit/internal/modules/risk"
	"medtransit/internal/types"
)

type RiskHandler struct {
	risk *risk.Service
}

func NewRiskHandler(svc *risk.Service) *RiskHandler {
	return &RiskHandler{risk: svc}
}

func (h *RiskHandler) Assess(c *gin.Context) {
	prediction, err := h.risk.Assess(c.Request.Context(), types.ID(c.Param("id")), c.Query("weather"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prediction)
}

func (h *RiskHandler) Backlog(c *gin.Context) {
	predictions, err := h.risk.AssessBacklog(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}
