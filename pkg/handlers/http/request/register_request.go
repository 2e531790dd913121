package request

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RegisterRequest keeps Email and Username as pointers so absent keys are
// distinguishable from empty strings during validation.
type RegisterRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password string  `json:"password"`
}

// Validate covers the password rule only. Email format is checked against
// the sanitized value with ValidEmail, after the field pipeline has run.
func (r *RegisterRequest) Validate(passwordMinLength int) error {
	if len(r.Password) < passwordMinLength {
		return fmt.Errorf("password must be at least %d characters long", passwordMinLength)
	}
	return nil
}

func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}
