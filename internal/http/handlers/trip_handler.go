// README: Trip handlers for create, fetch, and status updates.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(svc *trip.Service) *TripHandler {
	return &TripHandler{trips: svc}
}

type createTripReq struct {
	PatientID      string  `json:"patient_id"`
	FacilityID     string  `json:"facility_id"`
	PickupAddress  string  `json:"pickup_address"`
	DropoffAddress string  `json:"dropoff_address"`
	ScheduledTime  string  `json:"scheduled_time"`
	ServiceLevel   string  `json:"service_level"`
	DistanceMiles  float64 `json:"distance_miles"`
	IsWillCall     bool    `json:"is_will_call"`
	TripType       string  `json:"trip_type"`
}

func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	var scheduled time.Time
	if req.ScheduledTime != "" {
		var err error
		scheduled, err = time.Parse(time.RFC3339, req.ScheduledTime)
		if err != nil {
			writeError(c, http.StatusBadRequest, "scheduled_time must be RFC3339")
			return
		}
	}
	id, err := h.trips.Create(c.Request.Context(), trip.CreateCommand{
		PatientID:      types.ID(req.PatientID),
		FacilityID:     types.ID(req.FacilityID),
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
		ScheduledTime:  scheduled,
		ServiceLevel:   trip.ServiceLevel(req.ServiceLevel),
		DistanceMiles:  req.DistanceMiles,
		IsWillCall:     req.IsWillCall,
		TripType:       req.TripType,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip_id": id, "status": trip.StatusPending})
}

func (h *TripHandler) Get(c *gin.Context) {
	t, err := h.trips.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

type updateStatusReq struct {
	Status    string `json:"status"`
	ActorType string `json:"actor_type"`
	ActorID   string `json:"actor_id"`
}

func (h *TripHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "status is required")
		return
	}
	cmd := trip.UpdateStatusCommand{
		TripID:    types.ID(c.Param("id")),
		To:        trip.Status(req.Status),
		ActorType: req.ActorType,
	}
	if req.ActorID != "" {
		id := types.ID(req.ActorID)
		cmd.ActorID = &id
	}
	if err := h.trips.UpdateStatus(c.Request.Context(), cmd); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip_id": c.Param("id"), "status": req.Status})
}
