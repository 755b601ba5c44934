// README: Pure weighted-additive no-show risk heuristic.
package risk

import (
	"fmt"
	"time"

	"medtransit/internal/modules/trip"
)

// EstimateRisk scores a trip's no-show likelihood from its schedule and the
// patient's history. The score is additive over fixed weights, clamped to
// [0, 100]. Confidence reflects how many optional inputs were actually
// supplied, not how certain the heuristic is.
func EstimateRisk(t *trip.Trip, hist *History) Prediction {
	score := 0
	var factors []string

	if hist != nil && hist.NoShowCount != nil {
		switch n := *hist.NoShowCount; {
		case n >= repeatNoShowMin:
			score += weightRepeatNoShow
			factors = append(factors, fmt.Sprintf("repeat no-show history (%d)", n))
		case n >= 1:
			score += weightPriorNoShow
			factors = append(factors, fmt.Sprintf("prior no-show (%d)", n))
		}
	}

	if hist != nil && hist.CancellationCount != nil {
		switch n := *hist.CancellationCount; {
		case n >= frequentCancelMin:
			score += weightFrequentCancel
			factors = append(factors, fmt.Sprintf("frequent cancellations (%d)", n))
		case n >= occasionalCancelMin:
			score += weightOccasionalCancel
			factors = append(factors, fmt.Sprintf("occasional cancellations (%d)", n))
		}
	}

	if t.HasRealSchedule() {
		hour := t.ScheduledTime.Hour()
		switch {
		case hour < 6:
			score += weightPreDawn
			factors = append(factors, "pre-dawn pickup")
		case hour < 8 || hour >= 18:
			score += weightOffHours
			factors = append(factors, "early or late pickup")
		}

		wd := t.ScheduledTime.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			score += weightWeekend
			factors = append(factors, "weekend trip")
		}

		notice := t.ScheduledTime.Sub(t.CreatedAt)
		switch {
		case notice < 12*time.Hour:
			score += weightShortNotice
			factors = append(factors, "booked under 12h in advance")
		case notice < 24*time.Hour:
			score += weightModerateNotice
			factors = append(factors, "booked under 24h in advance")
		}
	}

	if hist != nil && hist.HasPhone != nil && !*hist.HasPhone {
		score += weightNoPhone
		factors = append(factors, "no phone number on file")
	}
	if hist != nil && hist.HasAltContact != nil && !*hist.HasAltContact {
		score += weightNoAltContact
		factors = append(factors, "no secondary contact on file")
	}

	if t.TripType == "private" {
		score += weightPrivateTrip
		factors = append(factors, "private trip")
	}

	if hist != nil && hist.Weather != nil {
		switch *hist.Weather {
		case "severe":
			score += weightSevereWeather
			factors = append(factors, "severe weather forecast")
		case "poor":
			score += weightPoorWeather
			factors = append(factors, "poor weather forecast")
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	level := levelFor(score)
	return Prediction{
		TripID:          t.ID,
		Score:           score,
		Level:           level,
		Factors:         factors,
		Recommendations: recommendationsByLevel[level],
		Confidence:      confidence(hist),
	}
}

func levelFor(score int) Level {
	switch {
	case score >= criticalThreshold:
		return LevelCritical
	case score >= highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

func confidence(hist *History) int {
	c := baseConfidence
	if hist == nil {
		return c
	}
	for _, supplied := range []bool{
		hist.NoShowCount != nil,
		hist.CancellationCount != nil,
		hist.HasPhone != nil,
		hist.HasAltContact != nil,
		hist.Weather != nil,
	} {
		if supplied {
			c += confidencePerField
		}
	}
	if c > maxConfidence {
		c = maxConfidence
	}
	return c
}
