package models

import (
	"time"

	"github.com/google/uuid"
)

const BookingStatusConfirmed = "confirmed"

type Booking struct {
	ID          int       `json:"id"`
	Reference   uuid.UUID `json:"reference"`
	EventID     int       `json:"event_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile,omitempty"`
	Quantity    int       `json:"quantity"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
