package models

import "time"

// BusCompany is an operator whose buses run trips.
type BusCompany struct {
	ID          int64
	Name        string
	Logo        string
	Description string
	PhoneNumber string
	Email       string
	Address     string
	IsActive    bool
	IsHidden    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Bus is a physical vehicle. BusSeats rows attached to it are the layout
// template copied into trip_seats whenever the bus is scheduled on a trip.
type Bus struct {
	ID           int64
	BusCompanyID int64
	LicensePlate string
	BusType      string
	TotalSeats   int
	IsActive     bool
}

// BusSeat is one position in a bus layout. It carries no status; per-trip
// availability lives on TripSeat.
type BusSeat struct {
	ID         int64
	BusID      int64
	SeatNumber string
}
