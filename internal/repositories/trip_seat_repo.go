package repositories

import (
	"context"
	"database/sql"

	intconfig "smartride-backend/internal/config"
	"smartride-backend/internal/domain/models"
)

type TripSeatRepo struct {
	DB *sql.DB
}

func (r TripSeatRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListByTrip returns the full seat map of a trip for the seat-picker UI.
func (r TripSeatRepo) ListByTrip(tripID int64) ([]models.TripSeat, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, seat_number, status
		FROM trip_seats
		WHERE trip_id = ?
		ORDER BY seat_number ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripSeat{}
	for rows.Next() {
		var s models.TripSeat
		if err := rows.Scan(&s.ID, &s.TripID, &s.SeatNumber, &s.Status); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SelectForUpdate locks the selected seat rows of one trip. Rows are locked
// in id order so two overlapping selections always collide instead of
// deadlocking. Seats named by the selector but missing from the trip are
// simply absent from the result; the caller compares counts.
func (r TripSeatRepo) SelectForUpdate(ctx context.Context, q Querier, tripID int64, sel models.SeatSelector) ([]models.TripSeat, error) {
	var (
		query string
		args  []any
	)
	if len(sel.Codes) > 0 {
		query = `SELECT id, trip_id, seat_number, status FROM trip_seats
			WHERE trip_id = ? AND seat_number IN (` + placeholders(len(sel.Codes)) + `)
			ORDER BY id FOR UPDATE`
		args = append(args, tripID)
		for _, c := range sel.Codes {
			args = append(args, c)
		}
	} else {
		query = `SELECT id, trip_id, seat_number, status FROM trip_seats
			WHERE trip_id = ? AND id IN (` + placeholders(len(sel.IDs)) + `)
			ORDER BY id FOR UPDATE`
		args = append(args, tripID)
		for _, id := range sel.IDs {
			args = append(args, id)
		}
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripSeat{}
	for rows.Next() {
		var s models.TripSeat
		if err := rows.Scan(&s.ID, &s.TripID, &s.SeatNumber, &s.Status); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateStatus flips seats from one status to another inside the caller's
// transaction and returns how many rows actually changed. A count below
// len(ids) means a competing writer got there first.
func (r TripSeatRepo) UpdateStatus(ctx context.Context, q Querier, ids []int64, from, to models.SeatStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(ids)+2)
	args = append(args, to)
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, from)

	res, err := q.ExecContext(ctx, `
		UPDATE trip_seats SET status = ?, updated_at = NOW()
		WHERE id IN (`+placeholders(len(ids))+`) AND status = ?`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SeedFromBus copies the bus seat layout into trip_seats for a new trip.
func (r TripSeatRepo) SeedFromBus(ctx context.Context, q Querier, tripID, busID int64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO trip_seats (trip_id, seat_number)
		SELECT ?, seat_number FROM bus_seats WHERE bus_id = ?
		ORDER BY seat_number`, tripID, busID)
	return err
}
