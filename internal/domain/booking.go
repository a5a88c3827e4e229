package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

type Booking struct {
	ID              string        `json:"id"`
	LaunchID        string        `json:"launch_id"`
	CustomerID      string        `json:"customer_id"`
	Seats           int           `json:"seats"`
	TotalPriceCents int64         `json:"total_price_cents"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// BookingDetails is the booking enriched with the fields callers need to
// render it without extra lookups. The price is the launch price at
// admission time.
type BookingDetails struct {
	Booking
	CustomerEmail           string `json:"customer_email"`
	RocketName              string `json:"rocket_name"`
	LaunchPricePerSeatCents int64  `json:"launch_price_per_seat_cents"`
}
