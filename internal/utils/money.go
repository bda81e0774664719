package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount renders an integer currency amount with thousand separators,
// e.g. 150000 -> "150,000". Used on tickets and dashboards.
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + formatThousand(amount)
}

// ParseAmount accepts "1,500" / "1500" style inputs.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(",", "", ".", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
