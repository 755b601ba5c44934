// README: Rate schedules (flat vs tiered), deductions, and engine-wide default rates.
package rates

import "medtransit/internal/modules/trip"

type ScheduleKind string

const (
	// KindFlat is the clinic-style schedule: one fixed amount per service level.
	KindFlat ScheduleKind = "flat"
	// KindTiered is the contractor/facility-style schedule: mileage bands per
	// service level.
	KindTiered ScheduleKind = "tiered"
)

// MileageTier is a flat-rate mileage band. A trip whose miles fall inside
// [FromMiles, ToMiles] bills/pays the band's Rate.
type MileageTier struct {
	FromMiles float64 `json:"from_miles"`
	ToMiles   float64 `json:"to_miles"`
	Rate      float64 `json:"rate"`
}

// BillingSchedule is what a billing entity (clinic or facility) has
// negotiated. Exactly one of FlatRates/Tiers is populated, discriminated by
// Kind; never probe both.
type BillingSchedule struct {
	Kind      ScheduleKind
	FlatRates map[trip.ServiceLevel]float64
	Tiers     map[trip.ServiceLevel][]MileageTier
	// CancellationRate/NoShowRate, when set, replace the computed amount for
	// trips that end in those states.
	CancellationRate *float64
	NoShowRate       *float64
}

// Deductions are subtracted from a driver's gross payout. PercentageCut is a
// percentage (0–100) of the pre-deduction amount.
type Deductions struct {
	RentalFee     float64
	InsuranceFee  float64
	PercentageCut float64
}

// DriverSchedule holds a driver's payout bands plus deductions.
type DriverSchedule struct {
	Tiers map[trip.ServiceLevel][]MileageTier
	// AdditionalMileRate applies per mile beyond the matched tier's ToMiles.
	AdditionalMileRate map[trip.ServiceLevel]float64
	Deductions         Deductions
	CancellationRate   *float64
	NoShowRate         *float64
}

// defaultBillingPerMile backs the "always produce a billable number" policy
// when no schedule is configured.
var defaultBillingPerMile = map[trip.ServiceLevel]float64{
	trip.ServiceAmbulatory: 3.5,
	trip.ServiceWheelchair: 5.0,
	trip.ServiceStretcher:  6.0,
}

type payoutDefault struct {
	Base      float64
	BaseMiles float64
	PerMile   float64
}

// defaultPayout covers drivers with no tier data at all: a base amount for
// the first BaseMiles, then PerMile for every mile beyond.
var defaultPayout = map[trip.ServiceLevel]payoutDefault{
	trip.ServiceAmbulatory: {Base: 14, BaseMiles: 5, PerMile: 1.2},
	trip.ServiceWheelchair: {Base: 28, BaseMiles: 5, PerMile: 2.0},
	trip.ServiceStretcher:  {Base: 35, BaseMiles: 5, PerMile: 2.5},
}

const (
	// waitGraceMinutes are free before the wait-time surcharge starts.
	waitGraceMinutes = 5.0
	// defaultWaitRatePerMinute applies when the schedule carries no override.
	defaultWaitRatePerMinute = 0.5
)
