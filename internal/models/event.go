package models

import "time"

type Event struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	Price          float64   `json:"price"`
	Img            string    `json:"img,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
