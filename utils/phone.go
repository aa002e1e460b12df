// utils/phone.go
package utils

import (
	"regexp"
	"strings"
)

var whatsAppPattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// NormalizeWhatsApp rewrites a number into the local form stored in the
// spreadsheet: a leading +62 becomes 0, any other leading + is dropped, and
// surrounding whitespace is trimmed. Already-local numbers are unchanged.
func NormalizeWhatsApp(number string) string {
	switch {
	case strings.HasPrefix(number, "+62"):
		number = "0" + number[len("+62"):]
	case strings.HasPrefix(number, "+"):
		number = number[1:]
	}
	return strings.TrimSpace(number)
}

// ValidateWhatsApp accepts local (08...) and international (+62...) numbers,
// ignoring spaces, dashes and parentheses.
func ValidateWhatsApp(number string) bool {
	return whatsAppPattern.MatchString(cleanPhone(number))
}

// ToE164 converts a stored number into the +<country><number> form the
// messaging provider expects. Local numbers are assumed Indonesian.
func ToE164(number string) string {
	n := cleanPhone(number)
	switch {
	case strings.HasPrefix(n, "+"):
		return n
	case strings.HasPrefix(n, "0"):
		return "+62" + n[1:]
	default:
		return "+" + n
	}
}

func cleanPhone(number string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(number))
}
