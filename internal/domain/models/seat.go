package models

import (
	"fmt"
	"strings"
	"time"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "Available"
	SeatReserved  SeatStatus = "Reserved"
	SeatBooked    SeatStatus = "Booked"
)

// TripSeat is an addressable seat on one trip. Seat state is scoped per
// trip, not per bus: rows are seeded from the bus layout when the trip is
// created, so two trips running the same physical bus never share
// availability.
type TripSeat struct {
	ID         int64
	TripID     int64
	SeatNumber string
	Status     SeatStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SeatSelector names the seats of one booking either by seat code or by
// trip-seat id, never both. It is resolved and validated once at the HTTP
// boundary; everything below it sees a single selection path.
type SeatSelector struct {
	Codes []string
	IDs   []int64
}

// MaxSeatsPerBooking caps one ticket at seven seats.
const MaxSeatsPerBooking = 7

// NewSeatSelector builds a validated selector. When both codes and ids are
// supplied the codes win, matching the booking form which always sends
// codes and only falls back to ids.
func NewSeatSelector(codes []string, ids []int64) (SeatSelector, error) {
	if len(codes) > 0 {
		seen := make(map[string]struct{}, len(codes))
		clean := make([]string, 0, len(codes))
		for _, c := range codes {
			c = strings.ToUpper(strings.TrimSpace(c))
			if c == "" {
				return SeatSelector{}, fmt.Errorf("empty seat number")
			}
			if _, dup := seen[c]; dup {
				return SeatSelector{}, fmt.Errorf("duplicate seat number %s", c)
			}
			seen[c] = struct{}{}
			clean = append(clean, c)
		}
		return SeatSelector{Codes: clean}, nil
	}
	if len(ids) > 0 {
		seen := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			if id <= 0 {
				return SeatSelector{}, fmt.Errorf("invalid seat id %d", id)
			}
			if _, dup := seen[id]; dup {
				return SeatSelector{}, fmt.Errorf("duplicate seat id %d", id)
			}
			seen[id] = struct{}{}
		}
		return SeatSelector{IDs: ids}, nil
	}
	return SeatSelector{}, fmt.Errorf("no seats selected")
}

// Count returns the number of seats named by the selector.
func (s SeatSelector) Count() int {
	if len(s.Codes) > 0 {
		return len(s.Codes)
	}
	return len(s.IDs)
}
