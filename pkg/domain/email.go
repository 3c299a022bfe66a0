package domain

import (
	"regexp"

	"discounts/pkg/serrors"
)

// emailPattern accepts anything shaped like local@domain.tld where no part
// contains whitespace or an extra "@". Deliberately loose: the address is
// confirmed by delivery, not by the parser.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a string that has been validated to look like an email address.
// A non-zero Email can only be obtained through ParseEmail, so holders can
// rely on it being well-formed. The original input is preserved verbatim,
// no case folding or trimming is applied.
type Email struct {
	raw string
}

// ParseEmail validates raw and returns it wrapped as an Email. On failure it
// returns a serrors.ErrInvalidEmail error carrying the rejected input.
func ParseEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, serrors.With(serrors.ErrInvalidEmail, "invalid email %q", raw)
	}

	return Email{raw: raw}, nil
}

// String returns the exact string the Email was parsed from.
func (e Email) String() string { return e.raw }
