package utils

import (
	"errors"

	"github.com/nyaruka/phonenumbers"
)

// defaultPhoneRegion is used when a number has no country prefix.
const defaultPhoneRegion = "KE"

// NormalizePhone parses a Kenyan phone number ("0712345678" or
// "+254712345678") and returns it in E.164 form.
func NormalizePhone(raw string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return "", errors.New(`invalid phone number format, use "0712345678" or "+254712345678"`)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", errors.New("invalid Kenyan phone number")
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
