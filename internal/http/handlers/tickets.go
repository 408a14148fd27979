package handlers

import (
	"net/http"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"
	"smartride-backend/internal/http/middleware"
	"smartride-backend/internal/repositories"
	"smartride-backend/internal/services"
	"smartride-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type createTicketRequest struct {
	TripID          int64    `json:"tripId"`
	SeatNumbers     []string `json:"seatNumbers"`
	Seats           string   `json:"seats"`
	SelectedSeatIDs []int64  `json:"selectedSeatIds"`
}

// CreateTicket books seats on a trip for the authenticated user. Seats may
// be named by seat number (array or comma-separated string) or by seat id;
// seat numbers take precedence.
func CreateTicket(c *gin.Context) {
	var req createTicketRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.TripID <= 0 {
		RespondFail(c, http.StatusBadRequest, "tripId is required")
		return
	}

	codes := req.SeatNumbers
	if len(codes) == 0 && req.Seats != "" {
		codes = utils.SplitSeatList(req.Seats)
	}
	sel, err := models.NewSeatSelector(codes, req.SelectedSeatIDs)
	if err != nil {
		RespondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	rc := middleware.CurrentUser(c)
	svc := services.BookingService{RequestID: requestID(c), Metrics: appMetrics}
	ticket, err := svc.BookSeats(c.Request.Context(), req.TripID, sel, rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, "ticket booked", toTicketDTO(ticket))
}

func MyTickets(c *gin.Context) {
	rc := middleware.CurrentUser(c)
	tickets, err := repositories.TicketRepo{}.ListByUser(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketDTO(t))
	}
	RespondOK(c, http.StatusOK, "tickets", out)
}

func GetTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rc := middleware.CurrentUser(c)
	ticket, err := repositories.TicketRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if ticket.UserID != rc.UserID && !rc.IsPrivileged() {
		RespondDomainError(c, domain.ForbiddenError{Msg: "not your ticket"})
		return
	}
	RespondOK(c, http.StatusOK, "ticket", toTicketDTO(ticket))
}

// CancelTicket releases the ticket's seats back to the pool. Owners cancel
// their own tickets; admins may cancel any ticket.
func CancelTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rc := middleware.CurrentUser(c)
	svc := services.BookingService{RequestID: requestID(c), Metrics: appMetrics}
	if err := svc.CancelTicket(c.Request.Context(), id, rc.UserID, rc.IsPrivileged()); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "ticket cancelled", nil)
}

// ETicketPDF streams the printable e-ticket for download.
func ETicketPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rc := middleware.CurrentUser(c)
	ticket, err := repositories.TicketRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if ticket.UserID != rc.UserID && !rc.IsPrivileged() {
		RespondDomainError(c, domain.ForbiddenError{Msg: "not your ticket"})
		return
	}

	pdf, filename, err := services.DocsService{RequestID: requestID(c)}.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
