package utils

import "regexp"

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether the address has a local@domain.tld shape.
// There is no deliverability check beyond the format.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword reports whether the password meets the length requirement.
func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}
