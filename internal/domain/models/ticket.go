package models

import "time"

type TicketStatus string

const (
	// TicketPending is defined for a future payment step; bookings are
	// issued directly as Confirmed today.
	TicketPending   TicketStatus = "Pending"
	TicketConfirmed TicketStatus = "Confirmed"
	TicketCancelled TicketStatus = "Cancelled"
	TicketUsed      TicketStatus = "Used"
)

// Ticket binds a user, a trip and one or more seats. Cancelled is the
// authoritative terminal state; listings filter on it instead of a separate
// deleted flag.
type Ticket struct {
	ID            int64
	UserID        int64
	TripID        int64
	TicketNumber  string
	QRCode        string
	NumberOfSeats int
	TotalPrice    int64
	Status        TicketStatus
	BookingDate   time.Time
	PaymentDate   *time.Time
	BoardingDate  *time.Time
	SeatNumbers   []string
	Trip          *Trip
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BoardingRecord is what the boarding desk sees after a QR scan, including
// the already-boarded case.
type BoardingRecord struct {
	TicketNumber   string
	PassengerName  string
	NumberOfSeats  int
	BoardingDate   time.Time
	AlreadyBoarded bool
}

// TripPassenger is one ticket on a trip as shown on the manager dashboard.
type TripPassenger struct {
	TicketID      int64
	TicketNumber  string
	UserID        int64
	UserName      string
	UserFullName  string
	UserPhone     string
	UserEmail     string
	NumberOfSeats int
	TotalPrice    int64
	QRCode        string
	Status        TicketStatus
	BookingDate   time.Time
	BoardingDate  *time.Time
	SeatNumbers   []string
}
