package services

import (
	"strings"
	"testing"
)

func TestDocsServiceGenerateETicket(t *testing.T) {
	loader := func(id int64) (ticketDocData, error) {
		return ticketDocData{
			TicketNumber:  "SR202503010800001234",
			QRCode:        "https://smartride.vn/ticket/SR202503010800001234",
			DepartureCity: "Hà Nội",
			ArrivalCity:   "Hải Phòng",
			CompanyName:   "SmartRide Express",
			DepartureTime: "2025-03-01 12:00",
			SeatNumbers:   []string{"A01", "A02"},
			TotalPrice:    300000,
			Status:        "Confirmed",
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateETicket(1)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateETicket returned empty data")
	}
	if filename != "ETICKET_SR202503010800001234.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceFilenameSanitized(t *testing.T) {
	loader := func(id int64) (ticketDocData, error) {
		return ticketDocData{TicketNumber: "SR/2025:bad name"}, nil
	}

	_, filename, err := DocsService{Loader: loader}.GenerateETicket(1)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if strings.ContainsAny(filename, "/:\\ ") {
		t.Fatalf("filename %q not sanitized", filename)
	}
}
