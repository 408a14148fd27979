package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const qrBaseURL = "https://smartride.vn/ticket/"

// NewTicketNumber builds a human-facing ticket identifier:
// "SR" + UTC timestamp + 4-digit random suffix. Uniqueness is best-effort
// here; the tickets table enforces it with a UNIQUE key and the booking
// transaction regenerates on a duplicate.
func NewTicketNumber(now time.Time) string {
	return fmt.Sprintf("SR%s%04d", now.UTC().Format("20060102150405"), 1000+rand.Intn(9000))
}

// QRCodeURL derives the opaque QR token embedded in the ticket. Boarding
// verifies it by exact string equality, not by signature.
func QRCodeURL(ticketNumber string) string {
	return qrBaseURL + ticketNumber
}
