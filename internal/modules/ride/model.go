// README: Ride aggregate; a driver's accepted group of ride requests.
package ride

import (
	"time"

	"carpool/internal/modules/request"
	"carpool/internal/types"
)

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Ride struct {
	ID                types.ID     `json:"id"`
	DriverID          types.ID     `json:"driver_id"`
	Status            Status       `json:"status"`
	Pickup            string       `json:"pickup"`
	Destination       string       `json:"destination"`
	SeatsBooked       int          `json:"seats_booked"`
	EstimatedEarnings types.Money  `json:"estimated_earnings"`
	FinalFare         *types.Money `json:"final_fare,omitempty"`
	DepartAt          time.Time    `json:"depart_at"`
	CreatedAt         time.Time    `json:"created_at"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty"`
	RequestIDs        []types.ID   `json:"request_ids"`
}

var AllowedTransitions = map[Status][]Status{
	StatusOngoing: {StatusCompleted, StatusCancelled},
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

// Member is the part of a ride request the accept workflow needs.
type Member struct {
	ID            types.ID
	Pickup        string
	Destination   string
	SeatsRequired int
	Status        string
}

func (m Member) routeRequest() request.RideRequest {
	return request.RideRequest{ID: m.ID, Pickup: m.Pickup, Destination: m.Destination, SeatsRequired: m.SeatsRequired}
}

type Earnings struct {
	Total     types.Money `json:"total"`
	RideCount int         `json:"ride_count"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
