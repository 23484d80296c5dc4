// README: Ride request aggregate and status definitions.
package request

import (
	"strings"
	"time"

	"carpool/internal/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCancelled Status = "cancelled"
)

type RideRequest struct {
	ID            types.ID  `json:"id"`
	RiderID       types.ID  `json:"rider_id"`
	Pickup        string    `json:"pickup"`
	Destination   string    `json:"destination"`
	SeatsRequired int       `json:"seats_required"`
	Status        Status    `json:"status"`
	RideID        *types.ID `json:"ride_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AllowedTransitions represents the request state flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending: {StatusAccepted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// ValidationError reports malformed request input. It is surfaced before anything is
// persisted or grouped.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Validate checks the guarantees the grouping estimator relies on.
func Validate(r RideRequest) error {
	if strings.TrimSpace(r.Pickup) == "" {
		return &ValidationError{Field: "pickup", Reason: "must not be empty"}
	}
	if strings.TrimSpace(r.Destination) == "" {
		return &ValidationError{Field: "destination", Reason: "must not be empty"}
	}
	if r.SeatsRequired < 1 {
		return &ValidationError{Field: "seats_required", Reason: "must be at least 1"}
	}
	return nil
}
