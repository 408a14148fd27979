package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var fixedNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		DB:  db,
		Now: func() time.Time { return fixedNow },
	}
	return svc, mock, func() { db.Close() }
}

func tripLockRow(totalSeats, bookedSeats int, active, hidden bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "bus_id", "bus_company_id", "departure_city", "arrival_city",
		"departure_time", "arrival_time", "price", "total_seats", "booked_seats",
		"is_active", "is_hidden",
	}).AddRow(10, 1, 1, "Hà Nội", "Hải Phòng",
		fixedNow.Add(4*time.Hour), fixedNow.Add(6*time.Hour), 150000, totalSeats, bookedSeats,
		active, hidden)
}

func seatRows(seats ...[2]any) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "trip_id", "seat_number", "status"})
	for _, s := range seats {
		rows.AddRow(s[0], 10, s[1], string(models.SeatAvailable))
	}
	return rows
}

func expectSuccessfulBookingTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips t WHERE t\\.id = \\? FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(tripLockRow(28, 0, true, false))
	mock.ExpectQuery("FROM trip_seats WHERE trip_id = \\? AND seat_number IN").
		WillReturnRows(seatRows([2]any{101, "A01"}, [2]any{102, "A02"}))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec("INSERT INTO ticket_seats").WithArgs(int64(55), int64(101)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO ticket_seats").WithArgs(int64(55), int64(102)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE trip_seats SET status").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE trips SET booked_seats").WithArgs(2, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestBookSeatsSuccess(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	expectSuccessfulBookingTx(mock)

	sel, err := models.NewSeatSelector([]string{"A01", "A02"}, nil)
	if err != nil {
		t.Fatalf("selector error: %v", err)
	}
	ticket, err := svc.BookSeats(context.Background(), 10, sel, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(ticket.TicketNumber, "SR20250301080000") {
		t.Fatalf("ticket number %q does not carry the booking timestamp", ticket.TicketNumber)
	}
	if len(ticket.TicketNumber) != len("SR20250301080000")+4 {
		t.Fatalf("ticket number %q has wrong suffix length", ticket.TicketNumber)
	}
	if ticket.QRCode != "https://smartride.vn/ticket/"+ticket.TicketNumber {
		t.Fatalf("qr code %q does not embed the ticket number", ticket.QRCode)
	}
	if ticket.TotalPrice != 300000 {
		t.Fatalf("total price = %d, want 300000", ticket.TotalPrice)
	}
	if ticket.Status != models.TicketConfirmed {
		t.Fatalf("status = %s, want Confirmed", ticket.Status)
	}
	if ticket.PaymentDate == nil || !ticket.PaymentDate.Equal(fixedNow) {
		t.Fatalf("payment date not stamped: %v", ticket.PaymentDate)
	}
	if len(ticket.SeatNumbers) != 2 || ticket.SeatNumbers[0] != "A01" || ticket.SeatNumbers[1] != "A02" {
		t.Fatalf("seat numbers = %v", ticket.SeatNumbers)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookSeatsRejectsEmptySelection(t *testing.T) {
	svc := BookingService{}
	_, err := svc.BookSeats(context.Background(), 10, models.SeatSelector{}, 7)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookSeatsRejectsMoreThanSevenSeats(t *testing.T) {
	svc := BookingService{}
	sel := models.SeatSelector{Codes: []string{"A01", "A02", "A03", "A04", "A05", "A06", "A07", "B01"}}
	_, err := svc.BookSeats(context.Background(), 10, sel, 7)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookSeatsHiddenTripNotFound(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips t WHERE t\\.id = \\? FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(tripLockRow(28, 0, true, true))
	mock.ExpectRollback()

	sel, _ := models.NewSeatSelector([]string{"A01"}, nil)
	_, err := svc.BookSeats(context.Background(), 10, sel, 7)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookSeatsMissingSeatConflicts(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips t WHERE t\\.id = \\? FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(tripLockRow(28, 0, true, false))
	mock.ExpectQuery("FROM trip_seats WHERE trip_id = \\? AND seat_number IN").
		WillReturnRows(seatRows([2]any{101, "A01"}))
	mock.ExpectRollback()

	sel, _ := models.NewSeatSelector([]string{"A01", "Z99"}, nil)
	_, err := svc.BookSeats(context.Background(), 10, sel, 7)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestBookSeatsTakenSeatConflicts(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	rows := sqlmock.NewRows([]string{"id", "trip_id", "seat_number", "status"}).
		AddRow(101, 10, "A01", string(models.SeatBooked))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips t WHERE t\\.id = \\? FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(tripLockRow(28, 1, true, false))
	mock.ExpectQuery("FROM trip_seats WHERE trip_id = \\? AND seat_number IN").
		WillReturnRows(rows)
	mock.ExpectRollback()

	sel, _ := models.NewSeatSelector([]string{"A01"}, nil)
	_, err := svc.BookSeats(context.Background(), 10, sel, 7)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "A01") {
		t.Fatalf("error should name the seat, got %q", err.Error())
	}
}

func TestBookSeatsInsufficientCapacityConflicts(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips t WHERE t\\.id = \\? FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(tripLockRow(20, 19, true, false))
	mock.ExpectQuery("FROM trip_seats WHERE trip_id = \\? AND seat_number IN").
		WillReturnRows(seatRows([2]any{101, "A01"}, [2]any{102, "A02"}))
	mock.ExpectRollback()

	sel, _ := models.NewSeatSelector([]string{"A01", "A02"}, nil)
	_, err := svc.BookSeats(context.Background(), 10, sel, 7)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestBookSeatsRetriesOnDuplicateTicketNumber(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	// First attempt loses the ticket-number race, the retry succeeds with a
	// freshly generated number.
	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips t WHERE t\\.id = \\? FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(tripLockRow(28, 0, true, false))
	mock.ExpectQuery("FROM trip_seats WHERE trip_id = \\? AND seat_number IN").
		WillReturnRows(seatRows([2]any{101, "A01"}, [2]any{102, "A02"}))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})
	mock.ExpectRollback()

	expectSuccessfulBookingTx(mock)

	sel, _ := models.NewSeatSelector([]string{"A01", "A02"}, nil)
	ticket, err := svc.BookSeats(context.Background(), 10, sel, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.ID != 55 {
		t.Fatalf("ticket id = %d, want 55", ticket.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookSeatsDeadlockExhaustsIntoConflict(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	for i := 0; i < bookingTxAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM trips t WHERE t\\.id = \\? FOR UPDATE").WithArgs(int64(10)).
			WillReturnError(&mysql.MySQLError{Number: 1213, Message: "deadlock found"})
		mock.ExpectRollback()
	}

	sel, _ := models.NewSeatSelector([]string{"A01"}, nil)
	_, err := svc.BookSeats(context.Background(), 10, sel, 7)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict after retries, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func ticketLockRow(userID int64, status models.TicketStatus, boarded any) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "trip_id", "ticket_number", "qr_code",
		"number_of_seats", "total_price", "status", "booking_date", "payment_date", "boarding_date",
	})
	rows.AddRow(55, userID, 10, "SR202503010800001234", "https://smartride.vn/ticket/SR202503010800001234",
		2, 300000, string(status), fixedNow, fixedNow, boarded)
	return rows
}

func TestCancelTicketReleasesSeats(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM tickets WHERE id = \\? FOR UPDATE").WithArgs(int64(55)).
		WillReturnRows(ticketLockRow(7, models.TicketConfirmed, nil))
	mock.ExpectQuery("SELECT trip_seat_id FROM ticket_seats").WithArgs(int64(55)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_seat_id"}).AddRow(101).AddRow(102))
	mock.ExpectExec("UPDATE trip_seats SET status").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE trips SET booked_seats").WithArgs(-2, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE tickets SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.CancelTicket(context.Background(), 55, 7, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTicketForbiddenForStrangers(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM tickets WHERE id = \\? FOR UPDATE").WithArgs(int64(55)).
		WillReturnRows(ticketLockRow(7, models.TicketConfirmed, nil))
	mock.ExpectRollback()

	err := svc.CancelTicket(context.Background(), 55, 8, false)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCancelTicketPrivilegedOverridesOwnership(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM tickets WHERE id = \\? FOR UPDATE").WithArgs(int64(55)).
		WillReturnRows(ticketLockRow(7, models.TicketConfirmed, nil))
	mock.ExpectQuery("SELECT trip_seat_id FROM ticket_seats").WithArgs(int64(55)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_seat_id"}).AddRow(101).AddRow(102))
	mock.ExpectExec("UPDATE trip_seats SET status").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE trips SET booked_seats").WithArgs(-2, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE tickets SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.CancelTicket(context.Background(), 55, 99, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancelCancelledTicketNotFound(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM tickets WHERE id = \\? FOR UPDATE").WithArgs(int64(55)).
		WillReturnRows(ticketLockRow(7, models.TicketCancelled, nil))
	mock.ExpectRollback()

	err := svc.CancelTicket(context.Background(), 55, 7, false)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCancelUsedTicketConflicts(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	boarded := fixedNow.Add(-time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM tickets WHERE id = \\? FOR UPDATE").WithArgs(int64(55)).
		WillReturnRows(ticketLockRow(7, models.TicketUsed, boarded))
	mock.ExpectRollback()

	err := svc.CancelTicket(context.Background(), 55, 7, false)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func userRow(fullName string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_name", "email", "full_name", "phone_number",
		"password_hash", "avatar", "role", "is_active",
	}).AddRow(7, "nguyen", "nguyen@example.com", fullName, "0900000000", "x", "", "User", true)
}

func TestConfirmBoardingMarksTicketUsed(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM tickets WHERE id = \\? FOR UPDATE").WithArgs(int64(55)).
		WillReturnRows(ticketLockRow(7, models.TicketConfirmed, nil))
	mock.ExpectQuery("FROM users WHERE id = \\?").WithArgs(int64(7)).
		WillReturnRows(userRow("Nguyễn Văn A"))
	mock.ExpectExec("UPDATE tickets SET status = \\?, boarding_date").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, err := svc.ConfirmBoarding(context.Background(), 55, "https://smartride.vn/ticket/SR202503010800001234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.AlreadyBoarded {
		t.Fatalf("first scan must not report already boarded")
	}
	if rec.PassengerName != "Nguyễn Văn A" {
		t.Fatalf("passenger name = %q", rec.PassengerName)
	}
	if !rec.BoardingDate.Equal(fixedNow) {
		t.Fatalf("boarding date = %v, want %v", rec.BoardingDate, fixedNow)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmBoardingQRMismatch(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM tickets WHERE id = \\? FOR UPDATE").WithArgs(int64(55)).
		WillReturnRows(ticketLockRow(7, models.TicketConfirmed, nil))
	mock.ExpectQuery("FROM users WHERE id = \\?").WithArgs(int64(7)).
		WillReturnRows(userRow("Nguyễn Văn A"))
	mock.ExpectRollback()

	_, err := svc.ConfirmBoarding(context.Background(), 55, "https://smartride.vn/ticket/SOMETHINGELSE")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "QR Code không khớp") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestConfirmBoardingSecondScanReportsExistingBoarding(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	boarded := fixedNow.Add(-30 * time.Minute)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM tickets WHERE id = \\? FOR UPDATE").WithArgs(int64(55)).
		WillReturnRows(ticketLockRow(7, models.TicketUsed, boarded))
	mock.ExpectQuery("FROM users WHERE id = \\?").WithArgs(int64(7)).
		WillReturnRows(userRow("Nguyễn Văn A"))
	mock.ExpectRollback()

	rec, err := svc.ConfirmBoarding(context.Background(), 55, "https://smartride.vn/ticket/SR202503010800001234")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !rec.AlreadyBoarded {
		t.Fatalf("record must report the existing boarding")
	}
	if !rec.BoardingDate.Equal(boarded) {
		t.Fatalf("boarding date = %v, want the original %v", rec.BoardingDate, boarded)
	}
	if rec.TicketNumber != "SR202503010800001234" {
		t.Fatalf("ticket number = %q", rec.TicketNumber)
	}
}

func TestConfirmBoardingCancelledTicketNotFound(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM tickets WHERE id = \\? FOR UPDATE").WithArgs(int64(55)).
		WillReturnRows(ticketLockRow(7, models.TicketCancelled, nil))
	mock.ExpectRollback()

	_, err := svc.ConfirmBoarding(context.Background(), 55, "https://smartride.vn/ticket/SR202503010800001234")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
