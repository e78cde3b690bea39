package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// NormalizeEmail lowercases and trims an email address. All email lookups
// and the users unique index go through this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaskEmail hides the middle of the local part: "jordan@example.com" ->
// "j****n@example.com". Local parts of one or two characters are fully
// masked. The domain stays visible.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return email
	}

	local := email[:at]
	domain := email[at:]

	runes := []rune(local)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes)) + domain
	}

	masked := string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
	return masked + domain
}
