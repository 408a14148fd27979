package utils

import (
	"strings"
	"testing"
	"time"
)

func TestNewTicketNumberFormat(t *testing.T) {
	at := time.Date(2025, 3, 1, 8, 30, 15, 0, time.UTC)
	n := NewTicketNumber(at)

	if !strings.HasPrefix(n, "SR20250301083015") {
		t.Fatalf("ticket number %q does not start with SR + timestamp", n)
	}
	if len(n) != len("SR20250301083015")+4 {
		t.Fatalf("ticket number %q has wrong length", n)
	}
	suffix := n[len(n)-4:]
	for _, c := range suffix {
		if c < '0' || c > '9' {
			t.Fatalf("suffix %q is not numeric", suffix)
		}
	}
}

func TestNewTicketNumberUsesUTC(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	at := time.Date(2025, 3, 1, 15, 0, 0, 0, loc)
	n := NewTicketNumber(at)
	if !strings.HasPrefix(n, "SR20250301080000") {
		t.Fatalf("ticket number %q not rendered in UTC", n)
	}
}

func TestQRCodeURL(t *testing.T) {
	got := QRCodeURL("SR202503010800001234")
	want := "https://smartride.vn/ticket/SR202503010800001234"
	if got != want {
		t.Fatalf("QRCodeURL = %q, want %q", got, want)
	}
}
