// Package storage defines the error contract shared by storage
// implementations and their callers.
package storage

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNoUpdateFields  = errors.New("no fields to update")
)

// InsufficientSeatsError is returned by the booking transaction when the
// requested quantity exceeds the event's current availability. It carries
// the availability observed under the row lock so callers can report it.
type InsufficientSeatsError struct {
	Available int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("not enough available seats: %d left", e.Available)
}

type CreateEventParams struct {
	Title          string
	Description    string
	Location       string
	Date           time.Time
	TotalSeats     int
	AvailableSeats int
	Price          float64
	Img            string
}

// UpdateEventParams carries an optional new value per event field; nil
// fields are left untouched. TotalSeats and AvailableSeats are independent:
// changing one never adjusts the other.
type UpdateEventParams struct {
	Title          *string
	Description    *string
	Location       *string
	Date           *time.Time
	TotalSeats     *int
	AvailableSeats *int
	Price          *float64
	Img            *string
}

type CreateBookingParams struct {
	EventID  int
	Name     string
	Email    string
	Mobile   string
	Quantity int
}

// EventFilters narrows event listing. Zero values mean "no filter":
// Query matches title or description, Location is a substring match,
// Date matches the calendar day.
type EventFilters struct {
	Query    string
	Location string
	Date     time.Time
}
