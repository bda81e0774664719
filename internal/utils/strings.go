package utils

import (
	"regexp"
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// mobilePattern matches national mobile numbers: optional +880 country code
// or a leading 0, operator digit 3-9, eight subscriber digits.
var mobilePattern = regexp.MustCompile(`^(?:\+?880|0)1[3-9][0-9]{8}$`)

// IsMobile validates a passenger/contact phone after stripping separators.
func IsMobile(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
	return mobilePattern.MatchString(cleaned)
}

// NormalizeGender maps free-form gender input onto the stored vocabulary.
func NormalizeGender(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return "male"
	case "f", "female":
		return "female"
	case "other", "o":
		return "other"
	default:
		return ""
	}
}
