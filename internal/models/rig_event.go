package models

import "time"

// Event types written to the rig event log.
const (
	EventPourStart         = "POUR_START"
	EventPourDone          = "POUR_DONE"
	EventIngredientPoured  = "INGREDIENT_POURED"
	EventIngredientSkipped = "INGREDIENT_SKIPPED"
	EventPrime             = "PRIME"
	EventClean             = "CLEAN"
	EventFault             = "FAULT"
	EventCalibration       = "CALIBRATION"
	EventConfig            = "CONFIG"
)

// RigEvent is a single log entry.
type RigEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
