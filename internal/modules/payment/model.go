// README: Payment records for completed rides.
package payment

import (
	"time"

	"carpool/internal/types"
)

type Status string

const StatusPaid Status = "paid"

type Payment struct {
	ID        types.ID    `json:"id"`
	RiderID   types.ID    `json:"rider_id"`
	RideID    types.ID    `json:"ride_id"`
	Amount    types.Money `json:"amount"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
