package models

import "time"

// Trip is a scheduled bus journey between two cities with a seat/price
// envelope. AvailableSeats is always derived, never stored.
type Trip struct {
	ID             int64
	BusID          int64
	BusCompanyID   int64
	DepartureCity  string
	ArrivalCity    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	Price          int64
	TotalSeats     int
	BookedSeats    int
	IsActive       bool
	IsHidden       bool
	BusCompanyName string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t Trip) AvailableSeats() int {
	return t.TotalSeats - t.BookedSeats
}

// TripUpdate supports PATCH-style updates via key presence.
type TripUpdate struct {
	DepartureCity *string
	ArrivalCity   *string
	DepartureTime *time.Time
	ArrivalTime   *time.Time
	Price         *int64
	IsActive      *bool
	IsHidden      *bool
}
