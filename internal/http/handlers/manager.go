package handlers

import (
	"net/http"
	"strings"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repositories"
	"smartride-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ManagerTrips lists every active trip for the boarding dashboard.
func ManagerTrips(c *gin.Context) {
	trips, err := repositories.TripRepo{}.ListActive()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "trips", toTripDTOs(trips))
}

// TripPassengers returns the manifest for one trip: who booked, which seats,
// and who has already boarded.
func TripPassengers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := (repositories.TripRepo{}).GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	passengers, err := repositories.TicketRepo{}.ListByTrip(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "passengers", toPassengerDTOs(passengers))
}

type confirmBoardingRequest struct {
	QRCode string `json:"qrCode"`
}

// ConfirmBoarding marks a scanned ticket as used. Scanning a ticket twice is
// not an error state for the desk: the response reports the earlier boarding
// so the manager sees who boarded and when.
func ConfirmBoarding(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req confirmBoardingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.QRCode) == "" {
		RespondFail(c, http.StatusBadRequest, "qrCode is required")
		return
	}

	svc := services.BookingService{RequestID: requestID(c), Metrics: appMetrics}
	rec, err := svc.ConfirmBoarding(c.Request.Context(), id, req.QRCode)
	if err != nil {
		if domain.IsConflict(err) && rec.AlreadyBoarded {
			c.JSON(http.StatusConflict, Response{
				Success: false,
				Message: err.Error(),
				Data:    toBoardingDTO(rec),
			})
			return
		}
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "boarding confirmed", toBoardingDTO(rec))
}

// SearchByQR resolves a raw scanned code to its ticket, letting the desk
// look a passenger up before confirming.
func SearchByQR(c *gin.Context) {
	var req confirmBoardingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	qr := strings.TrimSpace(req.QRCode)
	if qr == "" {
		RespondFail(c, http.StatusBadRequest, "qrCode is required")
		return
	}
	ticket, err := repositories.TicketRepo{}.GetByQRCode(qr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "ticket", toTicketDTO(ticket))
}
