package phone

import (
	"regexp"
	"strings"
)

var (
	indianMobile = regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`)
	separators   = strings.NewReplacer(" ", "", "-", "", "\t", "")
	nonDigits    = regexp.MustCompile(`\D`)
)

// IsValidIndian accepts ten digits starting 6-9, optionally prefixed with +91.
// Spaces and dashes are ignored.
func IsValidIndian(number string) bool {
	return indianMobile.MatchString(separators.Replace(number))
}

// FormatIndian normalises to +91-XXXXXXXXXX using the last ten digits.
// Inputs with fewer than ten digits are returned unchanged.
func FormatIndian(number string) string {
	digits := nonDigits.ReplaceAllString(number, "")
	if len(digits) < 10 {
		return number
	}
	return "+91-" + digits[len(digits)-10:]
}
