package handlers

import (
	"time"

	"smartride-backend/internal/domain/models"
)

type TripDTO struct {
	ID             int64     `json:"id"`
	BusID          int64     `json:"busId"`
	BusCompanyID   int64     `json:"busCompanyId"`
	DepartureCity  string    `json:"departureCity"`
	ArrivalCity    string    `json:"arrivalCity"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Price          int64     `json:"price"`
	TotalSeats     int       `json:"totalSeats"`
	BookedSeats    int       `json:"bookedSeats"`
	AvailableSeats int       `json:"availableSeats"`
	CompanyName    string    `json:"companyName,omitempty"`
	Status         string    `json:"status,omitempty"`
}

func toTripDTO(t models.Trip) TripDTO {
	status := "Active"
	if t.IsHidden {
		status = "Hidden"
	}
	if !t.IsActive {
		status = "Inactive"
	}
	return TripDTO{
		ID:             t.ID,
		BusID:          t.BusID,
		BusCompanyID:   t.BusCompanyID,
		DepartureCity:  t.DepartureCity,
		ArrivalCity:    t.ArrivalCity,
		DepartureTime:  t.DepartureTime,
		ArrivalTime:    t.ArrivalTime,
		Price:          t.Price,
		TotalSeats:     t.TotalSeats,
		BookedSeats:    t.BookedSeats,
		AvailableSeats: t.AvailableSeats(),
		CompanyName:    t.BusCompanyName,
		Status:         status,
	}
}

func toTripDTOs(trips []models.Trip) []TripDTO {
	out := make([]TripDTO, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripDTO(t))
	}
	return out
}

type SeatDTO struct {
	ID         int64  `json:"id"`
	SeatNumber string `json:"seatNumber"`
	Status     string `json:"status"`
}

func toSeatDTOs(seats []models.TripSeat) []SeatDTO {
	out := make([]SeatDTO, 0, len(seats))
	for _, s := range seats {
		out = append(out, SeatDTO{ID: s.ID, SeatNumber: s.SeatNumber, Status: string(s.Status)})
	}
	return out
}

type TicketDTO struct {
	ID            int64      `json:"id"`
	TicketNumber  string     `json:"ticketNumber"`
	QRCode        string     `json:"qrCode"`
	NumberOfSeats int        `json:"numberOfSeats"`
	TotalPrice    int64      `json:"totalPrice"`
	Status        string     `json:"status"`
	BookingDate   time.Time  `json:"bookingDate"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	BoardingDate  *time.Time `json:"boardingDate,omitempty"`
	SeatNumbers   []string   `json:"seatNumbers"`
	Trip          *TripDTO   `json:"trip,omitempty"`
}

func toTicketDTO(t models.Ticket) TicketDTO {
	dto := TicketDTO{
		ID:            t.ID,
		TicketNumber:  t.TicketNumber,
		QRCode:        t.QRCode,
		NumberOfSeats: t.NumberOfSeats,
		TotalPrice:    t.TotalPrice,
		Status:        string(t.Status),
		BookingDate:   t.BookingDate,
		PaymentDate:   t.PaymentDate,
		BoardingDate:  t.BoardingDate,
		SeatNumbers:   t.SeatNumbers,
	}
	if t.Trip != nil {
		trip := toTripDTO(*t.Trip)
		dto.Trip = &trip
	}
	return dto
}

type BoardingDTO struct {
	TicketNumber     string    `json:"ticketNumber"`
	PassengerName    string    `json:"passengerName"`
	NumberOfSeats    int       `json:"numberOfSeats"`
	BoardingDate     time.Time `json:"boardingDate"`
	IsAlreadyBoarded bool      `json:"isAlreadyBoarded"`
}

func toBoardingDTO(r models.BoardingRecord) BoardingDTO {
	return BoardingDTO{
		TicketNumber:     r.TicketNumber,
		PassengerName:    r.PassengerName,
		NumberOfSeats:    r.NumberOfSeats,
		BoardingDate:     r.BoardingDate,
		IsAlreadyBoarded: r.AlreadyBoarded,
	}
}

type PassengerDTO struct {
	TicketID      int64      `json:"ticketId"`
	TicketNumber  string     `json:"ticketNumber"`
	UserID        int64      `json:"userId"`
	UserName      string     `json:"userName"`
	UserFullName  string     `json:"userFullName"`
	UserPhone     string     `json:"userPhoneNumber"`
	UserEmail     string     `json:"userEmail"`
	NumberOfSeats int        `json:"numberOfSeats"`
	TotalPrice    int64      `json:"totalPrice"`
	QRCode        string     `json:"qrCode"`
	Status        string     `json:"status"`
	BookingDate   time.Time  `json:"bookingDate"`
	BoardingDate  *time.Time `json:"boardingDate,omitempty"`
	SeatNumbers   []string   `json:"seatNumbers"`
}

func toPassengerDTOs(list []models.TripPassenger) []PassengerDTO {
	out := make([]PassengerDTO, 0, len(list))
	for _, p := range list {
		out = append(out, PassengerDTO{
			TicketID:      p.TicketID,
			TicketNumber:  p.TicketNumber,
			UserID:        p.UserID,
			UserName:      p.UserName,
			UserFullName:  p.UserFullName,
			UserPhone:     p.UserPhone,
			UserEmail:     p.UserEmail,
			NumberOfSeats: p.NumberOfSeats,
			TotalPrice:    p.TotalPrice,
			QRCode:        p.QRCode,
			Status:        string(p.Status),
			BookingDate:   p.BookingDate,
			BoardingDate:  p.BoardingDate,
			SeatNumbers:   p.SeatNumbers,
		})
	}
	return out
}

type UserDTO struct {
	ID          int64  `json:"id"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Avatar      string `json:"avatar,omitempty"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
}

func toUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Avatar:      u.Avatar,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
}

type CompanyDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	IsActive    bool   `json:"isActive"`
	IsHidden    bool   `json:"isHidden"`
}

func toCompanyDTO(c models.BusCompany) CompanyDTO {
	return CompanyDTO{
		ID:          c.ID,
		Name:        c.Name,
		Logo:        c.Logo,
		Description: c.Description,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Address:     c.Address,
		IsActive:    c.IsActive,
		IsHidden:    c.IsHidden,
	}
}
