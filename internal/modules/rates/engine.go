// README: Pure rate computations: facility billing, driver payout, wait-time surcharge.
package rates

import (
	"fmt"
	"math"
	"strings"

	"medtransit/internal/modules/trip"
)

// BillingRate computes what the billing entity owes for a trip. A nil
// schedule falls back to the engine-wide per-mile defaults; the fallback is
// always visible in the breakdown so billing staff can spot unconfigured
// facilities. The breakdown string is part of the contract; it is surfaced
// verbatim in billing disputes.
func BillingRate(level trip.ServiceLevel, distanceMiles float64, sched *BillingSchedule, status trip.Status) (float64, string) {
	var parts []string
	var amount float64

	switch {
	case sched == nil:
		perMile := defaultBillingPerMile[level]
		amount = perMile * distanceMiles
		parts = append(parts, fmt.Sprintf("no schedule: default %s rate $%.2f/mi x %.1f mi = $%.2f",
			level, perMile, distanceMiles, round2(amount)))
	case sched.Kind == KindFlat:
		flat, ok := sched.FlatRates[level]
		if ok {
			amount = flat
			parts = append(parts, fmt.Sprintf("flat %s rate $%.2f", level, round2(flat)))
		} else {
			perMile := defaultBillingPerMile[level]
			amount = perMile * distanceMiles
			parts = append(parts, fmt.Sprintf("no flat %s rate: default $%.2f/mi x %.1f mi = $%.2f",
				level, perMile, distanceMiles, round2(amount)))
		}
	default: // KindTiered
		tier, ok := matchTier(sched.Tiers[level], distanceMiles)
		if ok {
			amount = tier.Rate
			parts = append(parts, fmt.Sprintf("tier %.0f-%.0f mi (%s) rate $%.2f",
				tier.FromMiles, tier.ToMiles, level, round2(tier.Rate)))
		} else {
			perMile := defaultBillingPerMile[level]
			amount = perMile * distanceMiles
			parts = append(parts, fmt.Sprintf("no %s tier covers %.1f mi: default $%.2f/mi = $%.2f",
				level, distanceMiles, perMile, round2(amount)))
		}
	}

	// Terminal-state overrides replace the computed amount entirely.
	if sched != nil {
		if status == trip.StatusNoShow && sched.NoShowRate != nil {
			amount = *sched.NoShowRate
			parts = append(parts, fmt.Sprintf("no-show override $%.2f", round2(amount)))
		}
		if status == trip.StatusCancelled && sched.CancellationRate != nil {
			amount = *sched.CancellationRate
			parts = append(parts, fmt.Sprintf("cancellation override $%.2f", round2(amount)))
		}
	}

	return round2(amount), strings.Join(parts, "; ")
}

// DriverPayout computes what the driver earns for a trip. Distance is rounded
// to the nearest whole mile before tier lookup. Cancelled and no-show trips
// pay the driver's override rate when set, otherwise nothing. Deductions
// never push the payout below zero.
func DriverPayout(sched *DriverSchedule, level trip.ServiceLevel, distanceMiles float64, status trip.Status) (float64, string) {
	if status == trip.StatusCancelled || status == trip.StatusNoShow {
		return terminalPayout(sched, status)
	}

	roundedMiles := math.Round(distanceMiles)
	var parts []string
	var gross float64

	tiers := tiersFor(sched, level)
	if len(tiers) > 0 {
		tier, ok := matchTier(tiers, roundedMiles)
		if !ok {
			// Distance beyond every band: the last band applies.
			tier = tiers[len(tiers)-1]
		}
		gross = tier.Rate
		parts = append(parts, fmt.Sprintf("tier %.0f-%.0f mi rate $%.2f", tier.FromMiles, tier.ToMiles, round2(tier.Rate)))
		if roundedMiles > tier.ToMiles {
			perMile := sched.AdditionalMileRate[level]
			extra := (roundedMiles - tier.ToMiles) * perMile
			gross += extra
			parts = append(parts, fmt.Sprintf("%.0f additional mi x $%.2f = $%.2f",
				roundedMiles-tier.ToMiles, perMile, round2(extra)))
		}
	} else {
		def := defaultPayout[level]
		gross = def.Base
		parts = append(parts, fmt.Sprintf("no tier data: default %s base $%.2f (first %.0f mi)",
			level, round2(def.Base), def.BaseMiles))
		if roundedMiles > def.BaseMiles {
			extra := (roundedMiles - def.BaseMiles) * def.PerMile
			gross += extra
			parts = append(parts, fmt.Sprintf("%.0f additional mi x $%.2f = $%.2f",
				roundedMiles-def.BaseMiles, def.PerMile, round2(extra)))
		}
	}

	net := gross
	if sched != nil {
		d := sched.Deductions
		if d.RentalFee > 0 {
			net -= d.RentalFee
			parts = append(parts, fmt.Sprintf("rental fee -$%.2f", round2(d.RentalFee)))
		}
		if d.InsuranceFee > 0 {
			net -= d.InsuranceFee
			parts = append(parts, fmt.Sprintf("insurance fee -$%.2f", round2(d.InsuranceFee)))
		}
		if d.PercentageCut > 0 {
			cut := gross * d.PercentageCut / 100
			net -= cut
			parts = append(parts, fmt.Sprintf("%.1f%% cut -$%.2f", d.PercentageCut, round2(cut)))
		}
	}
	if net < 0 {
		net = 0
		parts = append(parts, "payout floored at $0.00")
	}

	return round2(net), strings.Join(parts, "; ")
}

func terminalPayout(sched *DriverSchedule, status trip.Status) (float64, string) {
	label := "cancelled"
	var override *float64
	if sched != nil {
		override = sched.CancellationRate
	}
	if status == trip.StatusNoShow {
		label = "no-show"
		override = nil
		if sched != nil {
			override = sched.NoShowRate
		}
	}
	if override != nil {
		return round2(*override), fmt.Sprintf("%s rate $%.2f", label, round2(*override))
	}
	return 0, fmt.Sprintf("%s: no payout", label)
}

// WaitTimeCharge computes the surcharge for time the driver spent waiting at
// pickup beyond the grace period. ratePerMinute <= 0 selects the default.
func WaitTimeCharge(waitMinutes, ratePerMinute float64) (float64, string) {
	if ratePerMinute <= 0 {
		ratePerMinute = defaultWaitRatePerMinute
	}
	chargeable := waitMinutes - waitGraceMinutes
	if chargeable < 0 {
		chargeable = 0
	}
	amount := round2(chargeable * ratePerMinute)
	return amount, fmt.Sprintf("%.0f chargeable min x $%.2f/min = $%.2f", chargeable, ratePerMinute, amount)
}

// matchTier returns the band whose inclusive [FromMiles, ToMiles] range
// covers miles.
func matchTier(tiers []MileageTier, miles float64) (MileageTier, bool) {
	for _, t := range tiers {
		if miles >= t.FromMiles && miles <= t.ToMiles {
			return t, true
		}
	}
	return MileageTier{}, false
}

func tiersFor(sched *DriverSchedule, level trip.ServiceLevel) []MileageTier {
	if sched == nil {
		return nil
	}
	return sched.Tiers[level]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
