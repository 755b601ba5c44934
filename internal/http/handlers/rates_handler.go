// README: Billing and payout quote handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medtransit/internal/modules/rates"
	"medtransit/internal/types"
)

type RatesHandler struct {
	rates *rates.Service
}

func NewRatesHandler(svc *rates.Service) *RatesHandler {
	return &RatesHandler{rates: svc}
}

func (h *RatesHandler) Billing(c *gin.Context) {
	quote, err := h.rates.QuoteBilling(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *RatesHandler) Payout(c *gin.Context) {
	quote, err := h.rates.QuotePayout(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// WaitCharge quotes a wait-time surcharge from query parameters; it needs no
// trip record.
func (h *RatesHandler) WaitCharge(c *gin.Context) {
	waitMinutes, err := strconv.ParseFloat(c.Query("wait_minutes"), 64)
	if err != nil || waitMinutes < 0 {
		writeError(c, http.StatusBadRequest, "wait_minutes must be a non-negative number")
		return
	}
	ratePerMinute := 0.0
	if v := c.Query("rate_per_minute"); v != "" {
		ratePerMinute, err = strconv.ParseFloat(v, 64)
		if err != nil || ratePerMinute < 0 {
			writeError(c, http.StatusBadRequest, "rate_per_minute must be a non-negative number")
			return
		}
	}
	amount, breakdown := rates.WaitTimeCharge(waitMinutes, ratePerMinute)
	c.JSON(http.StatusOK, gin.H{"amount": amount, "breakdown": breakdown})
}
