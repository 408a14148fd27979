package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intconfig "smartride-backend/internal/config"
	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"
	"smartride-backend/internal/repositories"
	"smartride-backend/internal/utils"
)

type TripService struct {
	DB          *sql.DB
	TripRepo    repositories.TripRepo
	SeatRepo    repositories.TripSeatRepo
	CompanyRepo repositories.CompanyRepo
	RequestID   string
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TripService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s TripService) seats() repositories.TripSeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.TripSeatRepo{DB: s.db()}
}

func (s TripService) companies() repositories.CompanyRepo {
	if s.CompanyRepo.DB != nil {
		return s.CompanyRepo
	}
	return repositories.CompanyRepo{DB: s.db()}
}

func (s TripService) Search(departureCity, arrivalCity string, date time.Time) ([]models.Trip, error) {
	departureCity = utils.NormalizeSpace(departureCity)
	arrivalCity = utils.NormalizeSpace(arrivalCity)
	if departureCity == "" || arrivalCity == "" {
		return nil, domain.ValidationError{Field: "route", Msg: "departureCity and arrivalCity are required"}
	}
	return s.trips().Search(departureCity, arrivalCity, date)
}

func (s TripService) GetByID(id int64) (models.Trip, error) {
	trip, err := s.trips().GetByID(id)
	if err != nil {
		return models.Trip{}, err
	}
	if !trip.IsActive || trip.IsHidden {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return trip, nil
}

func (s TripService) ListSeats(tripID int64) ([]models.TripSeat, error) {
	if _, err := s.trips().GetByID(tripID); err != nil {
		return nil, err
	}
	return s.seats().ListByTrip(tripID)
}

// Create schedules a trip and seeds its per-trip seat map from the bus
// layout, both in one transaction so a trip can never exist without its
// seats.
func (s TripService) Create(ctx context.Context, t models.Trip) (models.Trip, error) {
	t.DepartureCity = utils.NormalizeSpace(t.DepartureCity)
	t.ArrivalCity = utils.NormalizeSpace(t.ArrivalCity)
	if t.DepartureCity == "" || t.ArrivalCity == "" {
		return models.Trip{}, domain.ValidationError{Field: "route", Msg: "departureCity and arrivalCity are required"}
	}
	if !t.ArrivalTime.After(t.DepartureTime) {
		return models.Trip{}, domain.ValidationError{Field: "arrivalTime", Msg: "arrival must be after departure"}
	}
	if t.Price <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "price", Msg: "price must be positive"}
	}

	bus, err := s.companies().GetBus(t.BusID)
	if err != nil {
		return models.Trip{}, err
	}
	t.BusCompanyID = bus.BusCompanyID
	t.TotalSeats = bus.TotalSeats

	err = repositories.WithTxRetry(ctx, s.db(), 1, func(tx *sql.Tx) error {
		id, err := s.trips().Insert(ctx, tx, t)
		if err != nil {
			return err
		}
		t.ID = id
		return s.seats().SeedFromBus(ctx, tx, id, t.BusID)
	})
	if err != nil {
		return models.Trip{}, err
	}

	t.IsActive = true
	utils.LogEvent(s.RequestID, "trips", "create",
		fmt.Sprintf("trip_id=%d route=%s-%s", t.ID, t.DepartureCity, t.ArrivalCity))
	return t, nil
}

func (s TripService) Update(id int64, upd models.TripUpdate) error {
	return s.trips().Update(id, upd)
}

func (s TripService) Delete(id int64) error {
	return s.trips().Deactivate(id)
}
