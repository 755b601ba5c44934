// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medtransit/internal/http/handlers"
	"medtransit/internal/http/middleware"
	"medtransit/internal/modules/dispatch"
	"medtransit/internal/modules/driver"
	"medtransit/internal/modules/rates"
	"medtransit/internal/modules/risk"
	"medtransit/internal/modules/trip"
)

type RouterDeps struct {
	Trips    *trip.Service
	Drivers  *driver.Service
	Dispatch *dispatch.Service
	Rates    *rates.Service
	Risk     *risk.Service
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	tripHandler := handlers.NewTripHandler(deps.Trips)
	r.POST("/api/trips", tripHandler.Create)
	r.GET("/api/trips/:id", tripHandler.Get)
	r.POST("/api/trips/:id/status", tripHandler.UpdateStatus)

	dispatchHandler := handlers.NewDispatchHandler(deps.Dispatch)
	r.GET("/api/trips/:id/recommendations", dispatchHandler.Recommendations)
	r.GET("/api/trips/:id/nearby-drivers", dispatchHandler.NearbyDrivers)
	r.POST("/api/trips/:id/assign", dispatchHandler.Assign)
	r.POST("/api/dispatch/auto-assign", dispatchHandler.AutoAssign)
	r.GET("/api/drivers/:id/conflicts", dispatchHandler.Conflicts)

	ratesHandler := handlers.NewRatesHandler(deps.Rates)
	r.GET("/api/trips/:id/billing", ratesHandler.Billing)
	r.GET("/api/trips/:id/payout", ratesHandler.Payout)
	r.GET("/api/rates/wait-charge", ratesHandler.WaitCharge)

	riskHandler := handlers.NewRiskHandler(deps.Risk)
	r.GET("/api/trips/:id/risk", riskHandler.Assess)
	r.GET("/api/risk/backlog", riskHandler.Backlog)

	driverHandler := handlers.NewDriverHandler(deps.Drivers)
	r.GET("/api/drivers/:id", driverHandler.Get)
	r.PUT("/api/drivers/:id/location", driverHandler.UpdateLocation)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
