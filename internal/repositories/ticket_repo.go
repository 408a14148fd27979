package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intconfig "smartride-backend/internal/config"
	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"
)

type TicketRepo struct {
	DB *sql.DB
}

func (r TicketRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert writes the ticket row inside the caller's transaction. A duplicate
// ticket_number surfaces as a retryable error so the booking transaction
// regenerates the number and retries.
func (r TicketRepo) Insert(ctx context.Context, q Querier, t *models.Ticket) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO tickets (user_id, trip_id, ticket_number, qr_code,
			number_of_seats, total_price, status, booking_date, payment_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.TripID, t.TicketNumber, t.QRCode,
		t.NumberOfSeats, t.TotalPrice, t.Status, t.BookingDate, t.PaymentDate)
	if err != nil {
		if IsDuplicateKey(err) {
			return Retryable(err)
		}
		return err
	}
	t.ID, err = res.LastInsertId()
	return err
}

// InsertSeats records the ticket/seat join rows. A TicketSeat row is the
// sole evidence a seat is consumed by a ticket.
func (r TicketRepo) InsertSeats(ctx context.Context, q Querier, ticketID int64, seatIDs []int64) error {
	for _, seatID := range seatIDs {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO ticket_seats (ticket_id, trip_seat_id) VALUES (?, ?)`,
			ticketID, seatID); err != nil {
			return err
		}
	}
	return nil
}

const ticketColumns = `id, user_id, trip_id, ticket_number, qr_code,
	number_of_seats, total_price, status, booking_date, payment_date, boarding_date`

func scanTicket(row interface{ Scan(...any) error }) (models.Ticket, error) {
	var (
		t        models.Ticket
		payment  sql.NullTime
		boarding sql.NullTime
	)
	err := row.Scan(&t.ID, &t.UserID, &t.TripID, &t.TicketNumber, &t.QRCode,
		&t.NumberOfSeats, &t.TotalPrice, &t.Status, &t.BookingDate, &payment, &boarding)
	if err != nil {
		return t, err
	}
	if payment.Valid {
		t.PaymentDate = &payment.Time
	}
	if boarding.Valid {
		t.BoardingDate = &boarding.Time
	}
	return t, nil
}

// GetForUpdate locks the ticket row for cancellation/boarding.
func (r TicketRepo) GetForUpdate(ctx context.Context, q Querier, id int64) (models.Ticket, error) {
	t, err := scanTicket(q.QueryRowContext(ctx, `
		SELECT `+ticketColumns+` FROM tickets WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
	}
	return t, err
}

// SeatIDs returns the trip_seat ids consumed by a ticket.
func (r TicketRepo) SeatIDs(ctx context.Context, q Querier, ticketID int64) ([]int64, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT trip_seat_id FROM ticket_seats WHERE ticket_id = ? ORDER BY trip_seat_id`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r TicketRepo) MarkCancelled(ctx context.Context, q Querier, id int64) error {
	_, err := q.ExecContext(ctx, `
		UPDATE tickets SET status = ?, updated_at = NOW() WHERE id = ?`,
		models.TicketCancelled, id)
	return err
}

func (r TicketRepo) MarkBoarded(ctx context.Context, q Querier, id int64, when time.Time) error {
	_, err := q.ExecContext(ctx, `
		UPDATE tickets SET status = ?, boarding_date = ?, updated_at = NOW() WHERE id = ?`,
		models.TicketUsed, when, id)
	return err
}

// GetByID loads a ticket with its trip summary and seat numbers.
func (r TicketRepo) GetByID(id int64) (models.Ticket, error) {
	t, err := scanTicket(r.db().QueryRow(`
		SELECT `+ticketColumns+` FROM tickets WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
	}
	if err != nil {
		return models.Ticket{}, err
	}
	return r.attachDetails(t)
}

// GetByQRCode resolves a scanned QR token to its ticket.
func (r TicketRepo) GetByQRCode(qr string) (models.Ticket, error) {
	t, err := scanTicket(r.db().QueryRow(`
		SELECT `+ticketColumns+` FROM tickets WHERE qr_code = ? AND status <> ? LIMIT 1`,
		qr, models.TicketCancelled))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
	}
	if err != nil {
		return models.Ticket{}, err
	}
	return r.attachDetails(t)
}

func (r TicketRepo) attachDetails(t models.Ticket) (models.Ticket, error) {
	trip, err := TripRepo{DB: r.DB}.GetByID(t.TripID)
	if err == nil {
		t.Trip = &trip
	}
	nums, err := r.seatNumbers(t.ID)
	if err != nil {
		return t, err
	}
	t.SeatNumbers = nums
	return t, nil
}

func (r TicketRepo) seatNumbers(ticketID int64) ([]string, error) {
	rows, err := r.db().Query(`
		SELECT s.seat_number
		FROM ticket_seats ts
		JOIN trip_seats s ON s.id = ts.trip_seat_id
		WHERE ts.ticket_id = ?
		ORDER BY s.seat_number`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ListByUser returns the caller's tickets, newest first. Cancelled tickets
// are filtered out here: "deleted" is a view over the Cancelled status, not
// a separate flag.
func (r TicketRepo) ListByUser(userID int64) ([]models.Ticket, error) {
	rows, err := r.db().Query(`
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE user_id = ? AND status <> ?
		ORDER BY created_at DESC`, userID, models.TicketCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}
	for i := range out {
		if out[i], err = r.attachDetails(out[i]); err != nil {
			return out, err
		}
	}
	return out, nil
}

// ListByTrip returns the manager's passenger manifest for a trip.
func (r TicketRepo) ListByTrip(tripID int64) ([]models.TripPassenger, error) {
	rows, err := r.db().Query(`
		SELECT t.id, t.ticket_number, t.user_id,
			COALESCE(u.user_name, ''), COALESCE(u.full_name, ''),
			COALESCE(u.phone_number, ''), COALESCE(u.email, ''),
			t.number_of_seats, t.total_price, t.qr_code, t.status,
			t.booking_date, t.boarding_date
		FROM tickets t
		LEFT JOIN users u ON u.id = t.user_id
		WHERE t.trip_id = ? AND t.status <> ?
		ORDER BY t.ticket_number ASC`, tripID, models.TicketCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripPassenger{}
	for rows.Next() {
		var (
			p        models.TripPassenger
			boarding sql.NullTime
		)
		if err := rows.Scan(&p.TicketID, &p.TicketNumber, &p.UserID,
			&p.UserName, &p.UserFullName, &p.UserPhone, &p.UserEmail,
			&p.NumberOfSeats, &p.TotalPrice, &p.QRCode, &p.Status,
			&p.BookingDate, &boarding); err != nil {
			return out, err
		}
		if boarding.Valid {
			p.BoardingDate = &boarding.Time
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}
	for i := range out {
		nums, err := r.seatNumbers(out[i].TicketID)
		if err != nil {
			return out, err
		}
		out[i].SeatNumbers = nums
	}
	return out, nil
}

// TotalRevenue sums ticket prices over every non-cancelled ticket.
func (r TicketRepo) TotalRevenue() (int64, error) {
	var total int64
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(total_price), 0) FROM tickets WHERE status <> ?`,
		models.TicketCancelled).Scan(&total)
	return total, err
}
