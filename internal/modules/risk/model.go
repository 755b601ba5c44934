// README: No-show risk predictions, factor weights, and tier thresholds.
package risk

import "medtransit/internal/types"

type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Prediction is derived per invocation and never persisted.
type Prediction struct {
	TripID          types.ID `json:"trip_id"`
	Score           int      `json:"risk_score"`
	Level           Level    `json:"risk_level"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
	Confidence      int      `json:"confidence"`
}

// History carries the optional inputs; nil fields mean "not supplied" and
// lower the prediction's confidence rather than defaulting to zero.
type History struct {
	NoShowCount       *int
	CancellationCount *int
	HasPhone          *bool
	HasAltContact     *bool
	Weather           *string // "severe", "poor", anything else is benign
}

const (
	// Factor weights. The estimator is a fixed heuristic, not a model.
	weightRepeatNoShow     = 30 // 3+ historical no-shows
	weightPriorNoShow      = 15 // 1-2 historical no-shows
	weightFrequentCancel   = 15 // 5+ historical cancellations
	weightOccasionalCancel = 8  // 2-4 historical cancellations
	weightPreDawn          = 10 // pickup before 06:00
	weightOffHours         = 5  // pickup before 08:00 or after 18:00
	weightWeekend          = 10
	weightShortNotice      = 15 // booked under 12h ahead
	weightModerateNotice   = 8  // booked under 24h ahead
	weightNoPhone          = 10
	weightNoAltContact     = 5
	weightPrivateTrip      = 5
	weightSevereWeather    = 5
	weightPoorWeather      = 3

	repeatNoShowMin     = 3
	frequentCancelMin   = 5
	occasionalCancelMin = 2

	// Tier thresholds on the clamped 0-100 score.
	criticalThreshold = 60
	highThreshold     = 40
	mediumThreshold   = 20

	// Confidence starts here and grows per optional field supplied.
	baseConfidence     = 70
	confidencePerField = 6
	maxConfidence      = 100
)

var recommendationsByLevel = map[Level][]string{
	LevelCritical: {
		"consider double-booking this time slot",
		"dispatcher should call the patient personally to confirm",
		"schedule a reminder call 2 hours before pickup",
	},
	LevelHigh: {
		"schedule a confirmation call the day before",
		"send an SMS reminder the morning of the trip",
	},
	LevelMedium: {
		"include in the automated reminder batch",
	},
	LevelLow: {
		"standard reminder cadence",
	},
}
