// Файл: internal/utils/formatters.go

package utils

import (
	"strconv"
	"time"
)

// FormatNumber выводит число с пробелами между тысячами: 1000000 -> "1 000 000".
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	negative := false
	if len(s) > 0 && s[0] == '-' {
		negative = true
		s = s[1:]
	}

	var out []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, digit)
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}

// FormatSignedNumber выводит число со знаком: "+9 000" или "-5 000".
func FormatSignedNumber(n int64) string {
	if n >= 0 {
		return "+" + FormatNumber(n)
	}
	return FormatNumber(n)
}

// FormatDate форматирует время для истории транзакций: "2025.01.15 14:03".
func FormatDate(t time.Time) string {
	return t.Format("2006.01.02 15:04")
}
