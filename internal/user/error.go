package user

import (
	"errors"

	"backoffice-console/internal/role"
)

// InvalidCredentialsMessage is the sign-in failure text when the API gives none.
const InvalidCredentialsMessage = "Invalid Email or Password"

// EmailInUseMessage is shown when registration hits an existing account.
const EmailInUseMessage = "Email is already in use"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already registered")
	ErrRoleNotAllowed     = errors.New("account role cannot use the console")
	ErrInvalidKind        = errors.New("unknown account listing")
	ErrNotPermitted       = role.ErrNotPermitted
)

// CredentialsError is a rejected sign-in. Message is the API's wording and
// may be empty.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string {
	if e.Message == "" {
		return ErrInvalidCredentials.Error()
	}
	return ErrInvalidCredentials.Error() + ": " + e.Message
}

func (e *CredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// UserMessage is the text to show on the sign-in form.
func (e *CredentialsError) UserMessage() string {
	if e.Message == "" {
		return InvalidCredentialsMessage
	}
	return e.Message
}
