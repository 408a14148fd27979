package handlers

import (
	"net/http"

	"smartride-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// AdminStats aggregates the dashboard counters.
func AdminStats(c *gin.Context) {
	users, err := repositories.UserRepo{}.Count()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	companies, err := repositories.CompanyRepo{}.CountActive()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	trips, err := repositories.TripRepo{}.CountActive()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	revenue, err := repositories.TicketRepo{}.TotalRevenue()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "stats", gin.H{
		"totalUsers":     users,
		"totalCompanies": companies,
		"activeTrips":    trips,
		"totalRevenue":   revenue,
	})
}

func AdminUsers(c *gin.Context) {
	users, err := repositories.UserRepo{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	RespondOK(c, http.StatusOK, "users", out)
}

// AdminTrips includes hidden and inactive trips.
func AdminTrips(c *gin.Context) {
	trips, err := repositories.TripRepo{}.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "trips", toTripDTOs(trips))
}
