package validate

import (
	"regexp"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{4,15}$`)

// Card numbers the simulator accepts. There is no real card network behind
// the processor, so a fixed allow list replaces brand and Luhn checks.
var acceptedCards = map[string]struct{}{
	"4111111111111111": {},
	"4242424242424242": {},
}

// Username checks the name against the allowed pattern:
// 4 to 15 characters of letters, digits, underscore or dash.
func Username(username string) error {
	if !usernameRe.MatchString(username) {
		return apperrors.ErrUsernameInvalid
	}
	return nil
}

func CardNumber(number string) error {
	if _, ok := acceptedCards[number]; !ok {
		return apperrors.ErrCardNotAccepted
	}
	return nil
}
