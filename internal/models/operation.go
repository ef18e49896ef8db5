package models

import "time"

// Operation kinds.
const (
	OperationPour  = "POUR"
	OperationPrime = "PRIME"
	OperationClean = "CLEAN"
)

// Operation states. An operation moves IDLE -> PREPARING -> CLEANUP and ends
// in DONE, FAILED or CANCELED.
const (
	StateIdle      = "IDLE"
	StatePreparing = "PREPARING"
	StateCleanup   = "CLEANUP"
	StateDone      = "DONE"
	StateFailed    = "FAILED"
	StateCanceled  = "CANCELED"
)

// Operation is a snapshot of the in-flight or most recent rig operation.
type Operation struct {
	ID          string             `json:"id,omitempty"`
	Kind        string             `json:"kind,omitempty"`
	State       string             `json:"state"`
	Cocktail    string             `json:"cocktail,omitempty"`
	Mode        string             `json:"mode,omitempty"`
	StartedAt   time.Time          `json:"started_at,omitempty"`
	FinishedAt  time.Time          `json:"finished_at,omitempty"`
	Pour        *PourReport        `json:"pour,omitempty"`
	Maintenance *MaintenanceReport `json:"maintenance,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// Running reports whether the operation still holds the rig.
func (o Operation) Running() bool {
	return o.State == StatePreparing || o.State == StateCleanup
}
