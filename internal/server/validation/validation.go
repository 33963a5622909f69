// Package validation checks the shape of registration input before it
// reaches storage.
package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// RegisterInput is the argument set of the register mutation.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Error lists every malformed field, in input order.
type Error struct {
	Fields  []string
	Reasons []string
}

func (e *Error) Error() string {
	return strings.Join(e.Reasons, "; ")
}

func (e *Error) add(field, reason string) {
	e.Fields = append(e.Fields, field)
	e.Reasons = append(e.Reasons, reason)
}

// ValidateCreate returns nil when in is structurally acceptable, or an *Error.
// Password confirmation is not checked here.
func ValidateCreate(in RegisterInput) error {
	verr := &Error{}

	if !usernamePattern.MatchString(in.Username) {
		verr.add("username", "username must be 3-32 characters of letters, digits, '_', '.' or '-'")
	}

	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		verr.add("email", "email must be a valid email address")
	}

	switch {
	case in.Password == "":
		verr.add("password", "password must not be empty")
	case len(in.Password) > MaxPasswordBytes:
		verr.add("password", "password must be at most 72 bytes")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
