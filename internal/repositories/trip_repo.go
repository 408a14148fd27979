package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "smartride-backend/internal/config"
	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"
)

type TripRepo struct {
	DB *sql.DB
}

func (r TripRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `t.id, t.bus_id, t.bus_company_id, t.departure_city, t.arrival_city,
	t.departure_time, t.arrival_time, t.price, t.total_seats, t.booked_seats,
	t.is_active, t.is_hidden`

func scanTrip(row interface{ Scan(...any) error }, withCompany bool) (models.Trip, error) {
	var t models.Trip
	dest := []any{
		&t.ID, &t.BusID, &t.BusCompanyID, &t.DepartureCity, &t.ArrivalCity,
		&t.DepartureTime, &t.ArrivalTime, &t.Price, &t.TotalSeats, &t.BookedSeats,
		&t.IsActive, &t.IsHidden,
	}
	if withCompany {
		dest = append(dest, &t.BusCompanyName)
	}
	err := row.Scan(dest...)
	return t, err
}

// Search returns visible trips between two cities departing on the given day.
func (r TripRepo) Search(departureCity, arrivalCity string, date time.Time) ([]models.Trip, error) {
	rows, err := r.db().Query(`
		SELECT `+tripColumns+`, COALESCE(c.name, '')
		FROM trips t
		LEFT JOIN bus_companies c ON c.id = t.bus_company_id
		WHERE t.departure_city = ? AND t.arrival_city = ?
		  AND DATE(t.departure_time) = ?
		  AND t.is_active = 1 AND t.is_hidden = 0
		ORDER BY t.departure_time ASC`,
		strings.TrimSpace(departureCity), strings.TrimSpace(arrivalCity), date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (r TripRepo) GetByID(id int64) (models.Trip, error) {
	t, err := scanTrip(r.db().QueryRow(`
		SELECT `+tripColumns+`, COALESCE(c.name, '')
		FROM trips t
		LEFT JOIN bus_companies c ON c.id = t.bus_company_id
		WHERE t.id = ? LIMIT 1`, id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

// GetForUpdate locks the trip row for the duration of the surrounding
// transaction. Every mutation of booked_seats goes through this lock.
func (r TripRepo) GetForUpdate(ctx context.Context, q Querier, id int64) (models.Trip, error) {
	t, err := scanTrip(q.QueryRowContext(ctx, `
		SELECT `+tripColumns+`
		FROM trips t
		WHERE t.id = ?
		FOR UPDATE`, id), false)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

// AddBookedSeats adjusts the trip counter inside the caller's transaction.
// The GREATEST guard keeps cancellation from driving the counter negative.
func (r TripRepo) AddBookedSeats(ctx context.Context, q Querier, id int64, delta int) error {
	_, err := q.ExecContext(ctx, `
		UPDATE trips
		SET booked_seats = GREATEST(booked_seats + ?, 0), updated_at = NOW()
		WHERE id = ?`, delta, id)
	return err
}

func (r TripRepo) Insert(ctx context.Context, q Querier, t models.Trip) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO trips (bus_id, bus_company_id, departure_city, arrival_city,
			departure_time, arrival_time, price, total_seats, booked_seats, is_active, is_hidden)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 1, 0)`,
		t.BusID, t.BusCompanyID, t.DepartureCity, t.ArrivalCity,
		t.DepartureTime, t.ArrivalTime, t.Price, t.TotalSeats)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update performs PATCH-style updates based on key presence.
func (r TripRepo) Update(id int64, upd models.TripUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.DepartureCity != nil {
		sets = append(sets, "departure_city=?")
		args = append(args, strings.TrimSpace(*upd.DepartureCity))
	}
	if upd.ArrivalCity != nil {
		sets = append(sets, "arrival_city=?")
		args = append(args, strings.TrimSpace(*upd.ArrivalCity))
	}
	if upd.DepartureTime != nil {
		sets = append(sets, "departure_time=?")
		args = append(args, *upd.DepartureTime)
	}
	if upd.ArrivalTime != nil {
		sets = append(sets, "arrival_time=?")
		args = append(args, *upd.ArrivalTime)
	}
	if upd.Price != nil {
		sets = append(sets, "price=?")
		args = append(args, *upd.Price)
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active=?")
		args = append(args, *upd.IsActive)
	}
	if upd.IsHidden != nil {
		sets = append(sets, "is_hidden=?")
		args = append(args, *upd.IsHidden)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	res, err := r.db().Exec(`UPDATE trips SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

// Deactivate takes a trip off sale without touching issued tickets.
func (r TripRepo) Deactivate(id int64) error {
	res, err := r.db().Exec(`UPDATE trips SET is_active=0, updated_at=NOW() WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

// ListActive returns every sellable trip, newest departure first. Used by
// the manager dashboard.
func (r TripRepo) ListActive() ([]models.Trip, error) {
	rows, err := r.db().Query(`
		SELECT ` + tripColumns + `, COALESCE(c.name, '')
		FROM trips t
		LEFT JOIN bus_companies c ON c.id = t.bus_company_id
		WHERE t.is_active = 1
		ORDER BY t.departure_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

// ListAll returns every trip including hidden/inactive ones (admin view).
func (r TripRepo) ListAll() ([]models.Trip, error) {
	rows, err := r.db().Query(`
		SELECT ` + tripColumns + `, COALESCE(c.name, '')
		FROM trips t
		LEFT JOIN bus_companies c ON c.id = t.bus_company_id
		ORDER BY t.departure_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (r TripRepo) CountActive() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM trips WHERE is_active=1`).Scan(&n)
	return n, err
}

func collectTrips(rows *sql.Rows) ([]models.Trip, error) {
	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows, true)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
