package models

// Outcome kinds for one ingredient of a pour.
const (
	OutcomePoured             = "POURED"
	OutcomeSkippedUnresolved  = "SKIPPED_UNRESOLVED"
	OutcomeSkippedUnparseable = "SKIPPED_UNPARSEABLE_AMOUNT"
	OutcomeSkippedOutOfRange  = "SKIPPED_OUT_OF_RANGE"
	OutcomeSkippedTooLong     = "SKIPPED_EXCEEDS_MAX_STEP"
	OutcomeFaulted            = "FAULTED"
	// OutcomeCanceled marks a step that was never started, because the
	// operation was canceled or an earlier step faulted.
	OutcomeCanceled = "CANCELED"
)

// IngredientOutcome reports what happened to one recipe ingredient.
type IngredientOutcome struct {
	Ingredient  string  `json:"ingredient"`
	Measurement string  `json:"measurement"`
	Outcome     string  `json:"outcome"`
	Pump        int     `json:"pump,omitempty"`
	Ounces      float64 `json:"ounces"`
	Unit        string  `json:"unit,omitempty"`
	DurationSec float64 `json:"duration_sec"`
	Warning     string  `json:"warning,omitempty"`
}

// Poured reports whether the ingredient was dispensed (or would have been,
// for a zero amount).
func (o IngredientOutcome) Poured() bool { return o.Outcome == OutcomePoured }

// PourReport is the result of one pour.
type PourReport struct {
	Cocktail       string              `json:"cocktail"`
	Mode           string              `json:"mode"`
	Multiplier     int                 `json:"multiplier"`
	SecondsPerOz   float64             `json:"seconds_per_oz"`
	Outcomes       []IngredientOutcome `json:"outcomes"`
	TotalPouredSec float64             `json:"total_poured_sec"`
	Canceled       bool                `json:"canceled,omitempty"`
}

// Count returns how many outcomes have the given kind.
func (r PourReport) Count(outcome string) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Outcome == outcome {
			n++
		}
	}
	return n
}

// PumpRun is one step of a prime or clean cycle.
type PumpRun struct {
	Pump        int     `json:"pump"`
	Direction   string  `json:"direction"`
	DurationSec float64 `json:"duration_sec"`
	Done        bool    `json:"done"`
}

// MaintenanceReport is the result of a prime or clean cycle.
type MaintenanceReport struct {
	Kind     string    `json:"kind"`
	Runs     []PumpRun `json:"runs"`
	Canceled bool      `json:"canceled,omitempty"`
}
