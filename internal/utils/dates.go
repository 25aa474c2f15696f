package utils

import (
	"regexp"
	"time"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate reports whether s is a real calendar date in YYYY-MM-DD form.
// The pattern check runs first so that "2024-1-5" fails even though it parses.
func ValidateDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	// Rejects impossible dates such as 2024-02-30.
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
