package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intconfig "smartride-backend/internal/config"
	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"
	"smartride-backend/internal/metrics"
	"smartride-backend/internal/repositories"
	"smartride-backend/internal/utils"
)

// bookingTxAttempts bounds the transparent retry on lock conflicts before a
// user-visible Conflict is surfaced.
const bookingTxAttempts = 3

// BookingService is the seat inventory manager: it owns every read-check-
// mutate sequence over trip_seats and trips.booked_seats. All three rows of
// state involved in a booking (ticket, seat statuses, trip counter) change
// inside one transaction with the trip and seat rows locked, so two
// concurrent requests naming the same seat can never both succeed.
type BookingService struct {
	DB         *sql.DB
	TripRepo   repositories.TripRepo
	SeatRepo   repositories.TripSeatRepo
	TicketRepo repositories.TicketRepo
	UserRepo   repositories.UserRepo
	Metrics    *metrics.Metrics
	RequestID  string
	Now        func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s BookingService) seats() repositories.TripSeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.TripSeatRepo{DB: s.db()}
}

func (s BookingService) tickets() repositories.TicketRepo {
	if s.TicketRepo.DB != nil {
		return s.TicketRepo
	}
	return repositories.TicketRepo{DB: s.db()}
}

func (s BookingService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

// BookSeats issues a Confirmed ticket for the selected seats of a trip.
// The trip row is locked first, then the seat rows in id order; a selection
// that lost the race for any seat fails as a whole, never partially.
func (s BookingService) BookSeats(ctx context.Context, tripID int64, sel models.SeatSelector, userID int64) (models.Ticket, error) {
	n := sel.Count()
	if n == 0 {
		return models.Ticket{}, domain.ValidationError{Field: "seats", Msg: "no seats selected"}
	}
	if n > models.MaxSeatsPerBooking {
		return models.Ticket{}, domain.ValidationError{Field: "seats", Msg: "maximum 7 seats per booking"}
	}

	start := s.now()
	var out models.Ticket

	err := repositories.WithTxRetry(ctx, s.db(), bookingTxAttempts, func(tx *sql.Tx) error {
		trip, err := s.trips().GetForUpdate(ctx, tx, tripID)
		if err != nil {
			return err
		}
		if !trip.IsActive || trip.IsHidden {
			return domain.NotFoundError{Resource: "trip"}
		}

		seats, err := s.seats().SelectForUpdate(ctx, tx, tripID, sel)
		if err != nil {
			return err
		}
		if len(seats) != n {
			return domain.ConflictError{Resource: "seat", Msg: "some seats are not available"}
		}
		if trip.AvailableSeats() < n {
			return domain.ConflictError{Resource: "trip", Msg: "not enough seats available"}
		}

		seatIDs := make([]int64, 0, n)
		seatNumbers := make([]string, 0, n)
		for _, seat := range seats {
			if seat.Status != models.SeatAvailable {
				return domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("seat %s is not available", seat.SeatNumber)}
			}
			seatIDs = append(seatIDs, seat.ID)
			seatNumbers = append(seatNumbers, seat.SeatNumber)
		}

		now := s.now()
		ticketNumber := utils.NewTicketNumber(now)
		ticket := models.Ticket{
			UserID:        userID,
			TripID:        tripID,
			TicketNumber:  ticketNumber,
			QRCode:        utils.QRCodeURL(ticketNumber),
			NumberOfSeats: n,
			TotalPrice:    int64(n) * trip.Price,
			Status:        models.TicketConfirmed,
			BookingDate:   now,
			PaymentDate:   &now,
			SeatNumbers:   seatNumbers,
		}
		if err := s.tickets().Insert(ctx, tx, &ticket); err != nil {
			return err
		}
		if err := s.tickets().InsertSeats(ctx, tx, ticket.ID, seatIDs); err != nil {
			return err
		}

		changed, err := s.seats().UpdateStatus(ctx, tx, seatIDs, models.SeatAvailable, models.SeatBooked)
		if err != nil {
			return err
		}
		if changed != int64(n) {
			return domain.ConflictError{Resource: "seat", Msg: "some seats are not available"}
		}
		if err := s.trips().AddBookedSeats(ctx, tx, tripID, n); err != nil {
			return err
		}

		out = ticket
		return nil
	})
	if err != nil {
		if domain.IsConflict(err) && s.Metrics != nil {
			s.Metrics.BookingConflicts.Inc()
		}
		return models.Ticket{}, err
	}

	if s.Metrics != nil {
		s.Metrics.TicketsBooked.Inc()
		s.Metrics.BookingDuration.Observe(time.Since(start).Seconds())
	}
	utils.LogEvent(s.RequestID, "booking", "book_seats",
		fmt.Sprintf("ticket=%s trip_id=%d seats=%d", out.TicketNumber, tripID, n))
	return out, nil
}

// CancelTicket reverses a booking: seats return to Available and the trip
// counter drops by the ticket's seat count, atomically with the status flip.
// Only the owner or a privileged caller may cancel.
func (s BookingService) CancelTicket(ctx context.Context, ticketID, requesterID int64, privileged bool) error {
	err := repositories.WithTxRetry(ctx, s.db(), bookingTxAttempts, func(tx *sql.Tx) error {
		ticket, err := s.tickets().GetForUpdate(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Status == models.TicketCancelled {
			return domain.NotFoundError{Resource: "ticket"}
		}
		if ticket.UserID != requesterID && !privileged {
			return domain.ForbiddenError{Msg: "not your ticket"}
		}
		if ticket.Status == models.TicketUsed {
			return domain.ConflictError{Resource: "ticket", Msg: "ticket already used"}
		}

		seatIDs, err := s.tickets().SeatIDs(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		if _, err := s.seats().UpdateStatus(ctx, tx, seatIDs, models.SeatBooked, models.SeatAvailable); err != nil {
			return err
		}
		if err := s.trips().AddBookedSeats(ctx, tx, ticket.TripID, -ticket.NumberOfSeats); err != nil {
			return err
		}
		return s.tickets().MarkCancelled(ctx, tx, ticketID)
	})
	if err != nil {
		return err
	}

	if s.Metrics != nil {
		s.Metrics.TicketsCancelled.Inc()
	}
	utils.LogEvent(s.RequestID, "booking", "cancel_ticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return nil
}

// ConfirmBoarding marks a ticket as consumed after a QR scan. It never
// touches seats or the trip counter: boarding is orthogonal to inventory.
// A second scan reports the existing boarding instead of mutating it.
func (s BookingService) ConfirmBoarding(ctx context.Context, ticketID int64, qrCode string) (models.BoardingRecord, error) {
	var rec models.BoardingRecord

	err := repositories.WithTxRetry(ctx, s.db(), bookingTxAttempts, func(tx *sql.Tx) error {
		ticket, err := s.tickets().GetForUpdate(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Status == models.TicketCancelled {
			return domain.NotFoundError{Resource: "ticket"}
		}

		passenger := ""
		if u, err := s.users().GetByID(ticket.UserID); err == nil {
			passenger = u.FullName
		}

		if ticket.QRCode != qrCode {
			return domain.ValidationError{Field: "qrCode", Msg: "QR Code không khớp. Vui lòng kiểm tra lại."}
		}
		if ticket.BoardingDate != nil {
			rec = models.BoardingRecord{
				TicketNumber:   ticket.TicketNumber,
				PassengerName:  passenger,
				NumberOfSeats:  ticket.NumberOfSeats,
				BoardingDate:   *ticket.BoardingDate,
				AlreadyBoarded: true,
			}
			return domain.ConflictError{Resource: "boarding", Msg: "Hành khách này đã lên xe rồi."}
		}

		now := s.now()
		if err := s.tickets().MarkBoarded(ctx, tx, ticket.ID, now); err != nil {
			return err
		}
		rec = models.BoardingRecord{
			TicketNumber:  ticket.TicketNumber,
			PassengerName: passenger,
			NumberOfSeats: ticket.NumberOfSeats,
			BoardingDate:  now,
		}
		return nil
	})
	if err != nil {
		// The already-boarded record rides along with the conflict so the
		// boarding desk can show who boarded and when.
		return rec, err
	}

	if s.Metrics != nil {
		s.Metrics.BoardingsConfirmed.Inc()
	}
	utils.LogEvent(s.RequestID, "booking", "confirm_boarding",
		fmt.Sprintf("ticket=%s", rec.TicketNumber))
	return rec, nil
}
