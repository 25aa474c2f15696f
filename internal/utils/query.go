package utils

import "strings"

// HasAllowedPrefix reports whether the statement's leading keyword is one of
// the allowed prefixes, case-insensitively and ignoring surrounding
// whitespace. Only the leading keyword is inspected; the statement is not
// parsed beyond it.
func HasAllowedPrefix(statement string, prefixes ...string) bool {
	q := strings.ToLower(strings.TrimSpace(statement))
	for _, p := range prefixes {
		if strings.HasPrefix(q, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
