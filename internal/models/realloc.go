package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Direction of a reallocation: into a station or back to the draft pool
type Direction string

const (
	DirectionAssign   Direction = "assign"
	DirectionWithdraw Direction = "withdraw"
)

// ReallocationRequest is one operator submission. It is ephemeral: it exists
// for the duration of a single workflow run and is never stored.
type ReallocationRequest struct {
	StationID string `json:"station_id"`
	Model     string `json:"model"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// LocalEstimate is the console's own count of eligible vehicles for a filter
// tuple. It is advisory by definition and must never be coerced into an
// authoritative backend figure. Known=false means "unknown", which renders
// neutral, not zero.
type LocalEstimate struct {
	Count      int       `json:"count"`
	Known      bool      `json:"known"`
	ObservedAt time.Time `json:"observed_at,omitempty"`
}

// UnknownEstimate is the estimate used when the filter is incomplete or the
// backend could not be reached.
func UnknownEstimate() LocalEstimate {
	return LocalEstimate{}
}

// KnownEstimate wraps a successfully computed count.
func KnownEstimate(count int, at time.Time) LocalEstimate {
	return LocalEstimate{Count: count, Known: true, ObservedAt: at}
}

// InventoryMismatch records a divergence between the console's local count
// and what the backend reported at submission time. Surfaced as a structured
// value so the operator sees the discrepancy instead of a bare rejection.
type InventoryMismatch struct {
	ClientCount    int    `json:"client_count"`
	ClientKnown    bool   `json:"client_known"`
	BackendMessage string `json:"backend_message,omitempty"`
}

func (m InventoryMismatch) String() string {
	if !m.ClientKnown {
		return fmt.Sprintf("backend rejected the request: %s", m.BackendMessage)
	}
	return fmt.Sprintf("console counted %d eligible vehicles but the backend rejected the request: %s",
		m.ClientCount, m.BackendMessage)
}

// PromotionFailure is one vehicle whose draft-to-available promotion failed
// after a successful assignment. The vehicle stays assigned to the station in
// draft status until promotion is retried.
type PromotionFailure struct {
	VehicleID string `json:"vehicle_id"`
	Reason    string `json:"reason"`
}

// PromotionOutcome is the settled result of a promotion batch. Failures are
// best-effort partial failures: they never undo the assignment itself.
// Unresolved counts vehicles the mutation moved but whose IDs could not be
// recovered, so no promotion was attempted for them; they sit at the station
// in draft status until found and retried.
type PromotionOutcome struct {
	Promoted         []string           `json:"promoted"`
	Failed           []PromotionFailure `json:"failed,omitempty"`
	Unresolved       int                `json:"unresolved,omitempty"`
	UnresolvedReason string             `json:"unresolved_reason,omitempty"`
}

// Complete reports whether every vehicle in the batch was promoted.
func (o PromotionOutcome) Complete() bool {
	return len(o.Failed) == 0 && o.Unresolved == 0
}

// CapacityWarning is advisory only; it never blocks a submission.
type CapacityWarning struct {
	CurrentVehicles int    `json:"current_vehicles"`
	MaxCapacity     int    `json:"max_capacity"`
	Requested       int    `json:"requested"`
	Projected       int    `json:"projected"`
	Message         string `json:"message"`
}

// AssignmentResult is the canonical, normalized outcome of one assignment
// submission, regardless of which response shape the backend produced.
type AssignmentResult struct {
	RequestID       uuid.UUID        `json:"request_id"`
	StationID       string           `json:"station_id"`
	Model           string           `json:"model"`
	Color           string           `json:"color"`
	Quantity        int              `json:"quantity"`
	TotalAssigned   int              `json:"total_assigned"`
	Vehicles        []Vehicle        `json:"vehicles,omitempty"`
	Promotion       PromotionOutcome `json:"promotion"`
	CapacityWarning *CapacityWarning `json:"capacity_warning,omitempty"`
}

// StationRemainder is the backend-reported station state after a withdrawal.
type StationRemainder struct {
	RemainingVehicles  int `json:"remaining_vehicles"`
	RemainingAvailable int `json:"remaining_available"`
}

// WithdrawalResult is the outcome of one withdrawal submission. The vehicles
// listed are the terminal state as reported by the backend; the console does
// no follow-up patching for withdrawals.
type WithdrawalResult struct {
	RequestID      uuid.UUID        `json:"request_id"`
	StationID      string           `json:"station_id"`
	Model          string           `json:"model"`
	Color          string           `json:"color"`
	Quantity       int              `json:"quantity"`
	WithdrawnCount int              `json:"withdrawn_count"`
	Vehicles       []Vehicle        `json:"vehicles,omitempty"`
	Station        StationRemainder `json:"station"`
}

// BadgeTone classifies the inventory badge rendering
type BadgeTone string

const (
	BadgeToneOK      BadgeTone = "ok"
	BadgeToneError   BadgeTone = "error"
	BadgeToneUnknown BadgeTone = "unknown"
)

// InventoryBadge is the advisory badge for a counted filter tuple. Hints
// carry the troubleshooting checklist when the count is a known zero.
type InventoryBadge struct {
	Tone  BadgeTone `json:"tone"`
	Label string    `json:"label"`
	Hints []string  `json:"hints,omitempty"`
}
