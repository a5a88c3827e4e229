package domain

import "time"

type LaunchStatus string

const (
	LaunchStatusScheduled LaunchStatus = "SCHEDULED"
	LaunchStatusActive    LaunchStatus = "ACTIVE"
	LaunchStatusCompleted LaunchStatus = "COMPLETED"
	LaunchStatusCancelled LaunchStatus = "CANCELLED"
)

func (s LaunchStatus) Valid() bool {
	switch s {
	case LaunchStatusScheduled, LaunchStatusActive, LaunchStatusCompleted, LaunchStatusCancelled:
		return true
	}
	return false
}

type Launch struct {
	ID                string       `json:"id"`
	RocketID          string       `json:"rocket_id"`
	Date              time.Time    `json:"date"`
	PricePerSeatCents int64        `json:"price_per_seat_cents"`
	MinPassengers     int          `json:"min_passengers"`
	Status            LaunchStatus `json:"status"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Availability is derived from the booking aggregate, never stored.
type Availability struct {
	LaunchID       string `json:"launch_id"`
	TotalSeats     int    `json:"total_seats"`
	BookedSeats    int    `json:"booked_seats"`
	AvailableSeats int    `json:"available_seats"`
}
