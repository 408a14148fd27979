package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	intconfig "smartride-backend/internal/config"
	"smartride-backend/internal/repositories"
	"smartride-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the downloadable e-ticket PDF.
type DocsService struct {
	DB         *sql.DB
	TicketRepo repositories.TicketRepo
	RequestID  string
	Loader     func(int64) (ticketDocData, error)
}

type ticketDocData struct {
	TicketNumber  string
	QRCode        string
	DepartureCity string
	ArrivalCity   string
	CompanyName   string
	DepartureTime string
	SeatNumbers   []string
	TotalPrice    int64
	Status        string
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) tickets() repositories.TicketRepo {
	if s.TicketRepo.DB != nil {
		return s.TicketRepo
	}
	return repositories.TicketRepo{DB: s.db()}
}

// GenerateETicket builds the PDF for one ticket. Access control (owner or
// admin) is the caller's job.
func (s DocsService) GenerateETicket(ticketID int64) ([]byte, string, error) {
	data, err := s.loadTicketDocData(ticketID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildETicketPDF(data)
}

func (s DocsService) loadTicketDocData(ticketID int64) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(ticketID)
	}
	t, err := s.tickets().GetByID(ticketID)
	if err != nil {
		return ticketDocData{}, err
	}
	out := ticketDocData{
		TicketNumber: t.TicketNumber,
		QRCode:       t.QRCode,
		SeatNumbers:  t.SeatNumbers,
		TotalPrice:   t.TotalPrice,
		Status:       string(t.Status),
	}
	if t.Trip != nil {
		out.DepartureCity = t.Trip.DepartureCity
		out.ArrivalCity = t.Trip.ArrivalCity
		out.CompanyName = t.Trip.BusCompanyName
		out.DepartureTime = t.Trip.DepartureTime.Format("2006-01-02 15:04")
	}
	return out, nil
}

func buildETicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SMARTRIDE E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket No    : %s", safe(d.TicketNumber, "-")),
		fmt.Sprintf("Operator     : %s", safe(d.CompanyName, "-")),
		fmt.Sprintf("Route        : %s -> %s", safe(d.DepartureCity, "-"), safe(d.ArrivalCity, "-")),
		fmt.Sprintf("Departure    : %s", safe(d.DepartureTime, "-")),
		fmt.Sprintf("Seats        : %s", safe(strings.Join(d.SeatNumbers, ", "), "-")),
		fmt.Sprintf("Total        : %s", utils.FormatVND(d.TotalPrice)),
		fmt.Sprintf("Status       : %s", safe(d.Status, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Boarding code:")
	pdf.Ln(7)
	pdf.SetFont("Courier", "", 10)
	pdf.MultiCell(0, 6, safe(d.QRCode, "-"), "", "", false)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this code to the manager at departure. The ticket covers all listed seats.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(d.TicketNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
