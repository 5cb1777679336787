package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidCode = errors.New("invalid coupon code format")

// Codes are stored uppercase; the regexp also accepts hand-created admin
// codes, not only generated ones.
var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}
