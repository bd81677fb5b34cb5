package validator

import (
	"regexp"
	"strings"
	"time"
)

// ValidationError is a single field failure. DTO Validate methods collect
// them into ValidationErrors, which the HTTP layer renders as a 422 with a
// field->message map.
type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Field + ": " + err.Message
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// IsEmpty reports whether s is blank once surrounding whitespace is removed.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isDigits(s string) bool {
	return digitsOnly.MatchString(s)
}

// IsValidDate parses a YYYY-MM-DD value, the wire format for all dates.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidNIK checks an Indonesian national ID number: exactly 16 digits.
func IsValidNIK(nik string) bool {
	return len(nik) == 16 && isDigits(nik)
}

// IsValidNPWP checks an Indonesian tax number. Old format is 15 digits,
// the post-2024 format is 16. Dots and dashes from formatted input are
// ignored.
func IsValidNPWP(npwp string) bool {
	npwp = strings.ReplaceAll(npwp, ".", "")
	npwp = strings.ReplaceAll(npwp, "-", "")
	return (len(npwp) == 15 || len(npwp) == 16) && isDigits(npwp)
}

// IsValidPhoneNumber checks an Indonesian phone number: 10-13 characters
// starting with 08, 62, or +62, digits throughout. Spaces and dashes from
// formatted input are ignored.
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")

	if len(phone) < 10 || len(phone) > 13 {
		return false
	}

	switch {
	case strings.HasPrefix(phone, "08"):
		return isDigits(phone)
	case strings.HasPrefix(phone, "62"):
		return isDigits(phone)
	case strings.HasPrefix(phone, "+62"):
		return isDigits(phone[1:])
	}
	return false
}

var companyUsernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)

// IsValidCompanyUsername checks the tenant slug: 3-50 characters from
// A-Z, a-z, 0-9, dot, underscore, hyphen.
func IsValidCompanyUsername(companyUsername string) bool {
	return companyUsernameRegex.MatchString(companyUsername)
}
