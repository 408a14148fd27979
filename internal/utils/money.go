package utils

import (
	"strconv"
	"strings"
)

// FormatVND renders an integral amount of đồng with thousand separators,
// e.g. 150000 -> "150.000 ₫". Prices in this system are whole VND.
func FormatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + formatThousand(amount) + " ₫"
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
