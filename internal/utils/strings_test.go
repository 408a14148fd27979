package utils

import "testing"

func TestSplitSeatList(t *testing.T) {
	got := SplitSeatList(" a01, b02;c03\n ,, ")
	want := []string{"A01", "B02", "C03"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Hà   Nội \t "); got != "Hà Nội" {
		t.Fatalf("NormalizeSpace = %q", got)
	}
}

func TestFormatVND(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 ₫"},
		{999, "999 ₫"},
		{150000, "150.000 ₫"},
		{1250000, "1.250.000 ₫"},
		{-5000, "-5.000 ₫"},
	}
	for _, tc := range cases {
		if got := FormatVND(tc.in); got != tc.want {
			t.Fatalf("FormatVND(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
