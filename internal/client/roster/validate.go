package roster

import "regexp"

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{5,16}$`)
)

// IsValidEmail reports whether the string looks like local@domain.tld.
// The character class is deliberately permissive; the server has the
// final say.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPhone accepts an optional leading + followed by 5 to 16 digits.
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}
