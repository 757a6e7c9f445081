package service

import (
	"strings"

	"github.com/heartmarshall/profilekit"
)

// RegisterInput holds parameters for profile registration. ID is optional;
// a blank one is replaced with a generated identifier.
type RegisterInput struct {
	ID    string
	Email string
}

// Validate checks the registration input. The check is structural only;
// deliverability or ownership of the address is out of scope.
func (i RegisterInput) Validate() error {
	email := strings.TrimSpace(i.Email)
	if email == "" {
		return profilekit.NewInvalidInput("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return profilekit.NewInvalidInput("email must have a local part and a domain")
	}
	return nil
}
