package handlers

import (
	"net/http"
	"strconv"
	"time"

	"smartride-backend/internal/domain/models"
	"smartride-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondFail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// SearchTrips lists visible trips for a route and date. Query parameters:
// departureCity, arrivalCity, date (YYYY-MM-DD, defaults to today).
func SearchTrips(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondFail(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	svc := services.TripService{RequestID: requestID(c)}
	trips, err := svc.Search(c.Query("departureCity"), c.Query("arrivalCity"), date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "trips", toTripDTOs(trips))
}

func GetTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	trip, err := services.TripService{RequestID: requestID(c)}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "trip", toTripDTO(trip))
}

func GetTripSeats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	seats, err := services.TripService{RequestID: requestID(c)}.ListSeats(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "seats", toSeatDTOs(seats))
}

type createTripRequest struct {
	BusID         int64     `json:"busId"`
	DepartureCity string    `json:"departureCity"`
	ArrivalCity   string    `json:"arrivalCity"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Price         int64     `json:"price"`
}

func CreateTrip(c *gin.Context) {
	var req createTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.BusID <= 0 {
		RespondFail(c, http.StatusBadRequest, "busId is required")
		return
	}

	svc := services.TripService{RequestID: requestID(c)}
	trip, err := svc.Create(c.Request.Context(), models.Trip{
		BusID:         req.BusID,
		DepartureCity: req.DepartureCity,
		ArrivalCity:   req.ArrivalCity,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, "trip created", toTripDTO(trip))
}

type updateTripRequest struct {
	DepartureCity *string    `json:"departureCity"`
	ArrivalCity   *string    `json:"arrivalCity"`
	DepartureTime *time.Time `json:"departureTime"`
	ArrivalTime   *time.Time `json:"arrivalTime"`
	Price         *int64     `json:"price"`
	IsActive      *bool      `json:"isActive"`
	IsHidden      *bool      `json:"isHidden"`
}

func UpdateTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		RespondFail(c, http.StatusBadRequest, "price must be positive")
		return
	}

	err := services.TripService{RequestID: requestID(c)}.Update(id, models.TripUpdate{
		DepartureCity: req.DepartureCity,
		ArrivalCity:   req.ArrivalCity,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		IsActive:      req.IsActive,
		IsHidden:      req.IsHidden,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "trip updated", nil)
}

func DeleteTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := (services.TripService{RequestID: requestID(c)}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "trip removed", nil)
}
