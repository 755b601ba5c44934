// README: Driver handlers for location/status updates.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medtransit/internal/modules/driver"
	"medtransit/internal/types"
)

type DriverHandler struct {
	drivers *driver.Service
}

func NewDriverHandler(svc *driver.Service) *DriverHandler {
	return &DriverHandler{drivers: svc}
}

func (h *DriverHandler) Get(c *gin.Context) {
	d, err := h.drivers.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type locationUpdateReq struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Status string  `json:"status"`
}

func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	var req locationUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.drivers.UpdateLocation(c.Request.Context(), driver.LocationUpdate{
		DriverID: types.ID(c.Param("id")),
		Position: types.Point{Lat: req.Lat, Lng: req.Lng},
		Status:   driver.Status(req.Status),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver_id": c.Param("id")})
}
