// README: Dispatch handlers for recommendations, batch assignment, and conflicts.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medtransit/internal/modules/dispatch"
	"medtransit/internal/types"
)

type DispatchHandler struct {
	dispatch *dispatch.Service
}

func NewDispatchHandler(svc *dispatch.Service) *DispatchHandler {
	return &DispatchHandler{dispatch: svc}
}

// Recommendations returns the full ranked driver list for a trip; the UI
// shows the top few.
func (h *DispatchHandler) Recommendations(c *gin.Context) {
	suggestions, err := h.dispatch.Recommend(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *DispatchHandler) AutoAssign(c *gin.Context) {
	result, err := h.dispatch.AutoAssignToday(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DispatchHandler) Conflicts(c *gin.Context) {
	driverID := types.ID(c.Param("id"))
	candidate := types.ID(c.Query("candidate_trip"))
	conflicts, err := h.dispatch.CheckConflicts(c.Request.Context(), driverID, candidate)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	// An empty list is the normal "no conflicts" outcome, not an error.
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
}

// NearbyDrivers is the coarse pre-check view: available drivers in the same
// geohash cell as the trip's pickup.
func (h *DispatchHandler) NearbyDrivers(c *gin.Context) {
	drivers, err := h.dispatch.NearbyDrivers(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

type assignReq struct {
	DriverID string `json:"driver_id"`
	// ActorID identifies the dispatcher for the audit trail; optional.
	ActorID string `json:"actor_id"`
}

func (h *DispatchHandler) Assign(c *gin.Context) {
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil || req.DriverID == "" {
		writeError(c, http.StatusBadRequest, "driver_id is required")
		return
	}
	var actorID *types.ID
	if req.ActorID != "" {
		id := types.ID(req.ActorID)
		actorID = &id
	}
	err := h.dispatch.Assign(c.Request.Context(), types.ID(c.Param("id")), types.ID(req.DriverID), actorID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip_id": c.Param("id"), "driver_id": req.DriverID, "status": "assigned"})
}
