package services

import (
	"context"
	"testing"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTripSearchRequiresRoute(t *testing.T) {
	svc := TripService{}
	if _, err := svc.Search("", "Hải Phòng", time.Now()); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Search("Hà Nội", "  ", time.Now()); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTripCreateValidates(t *testing.T) {
	svc := TripService{}
	base := models.Trip{
		BusID:         1,
		DepartureCity: "Hà Nội",
		ArrivalCity:   "Hải Phòng",
		DepartureTime: fixedNow,
		ArrivalTime:   fixedNow.Add(2 * time.Hour),
		Price:         150000,
	}

	bad := base
	bad.ArrivalTime = base.DepartureTime
	if _, err := svc.Create(context.Background(), bad); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for arrival time, got %v", err)
	}

	bad = base
	bad.Price = 0
	if _, err := svc.Create(context.Background(), bad); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for price, got %v", err)
	}
}

func TestTripCreateSeedsSeatsFromBus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM buses WHERE id = \\?").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "bus_company_id", "license_plate", "bus_type", "total_seats", "is_active",
		}).AddRow(1, 3, "29B-123.45", "Limousine", 28, true))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO trip_seats").WithArgs(int64(42), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 28))
	mock.ExpectCommit()

	svc := TripService{DB: db}
	trip, err := svc.Create(context.Background(), models.Trip{
		BusID:         1,
		DepartureCity: "Hà Nội",
		ArrivalCity:   "Hải Phòng",
		DepartureTime: fixedNow,
		ArrivalTime:   fixedNow.Add(2 * time.Hour),
		Price:         150000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.ID != 42 {
		t.Fatalf("trip id = %d, want 42", trip.ID)
	}
	if trip.BusCompanyID != 3 || trip.TotalSeats != 28 {
		t.Fatalf("trip did not inherit bus data: company=%d seats=%d", trip.BusCompanyID, trip.TotalSeats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripGetByIDHidesInactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips t LEFT JOIN bus_companies").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "bus_id", "bus_company_id", "departure_city", "arrival_city",
			"departure_time", "arrival_time", "price", "total_seats", "booked_seats",
			"is_active", "is_hidden", "name",
		}).AddRow(10, 1, 3, "Hà Nội", "Hải Phòng",
			fixedNow, fixedNow.Add(2*time.Hour), 150000, 28, 0,
			false, false, "SmartRide Express"))

	svc := TripService{DB: db}
	if _, err := svc.GetByID(10); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for inactive trip, got %v", err)
	}
}
