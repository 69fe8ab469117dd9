package utils

import (
	"regexp"
	"strings"
)

// phonePattern accepts an optional + followed by 2 to 15 digits, the
// usual national or E.164 shapes once separators are stripped.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{2,15}$`)

// NormalizePhone strips spaces, dashes and parentheses from a phone
// number so only the dialable characters remain.
func NormalizePhone(phone string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return r.Replace(phone)
}

// ValidPhone reports whether the (normalized) phone number looks like a
// dialable number and fits the 15-character column.
func ValidPhone(phone string) bool {
	cleaned := NormalizePhone(phone)
	return len(cleaned) <= 15 && phonePattern.MatchString(cleaned)
}
