// Package forms holds the client-side validation schemas for the auth
// screens. Validation happens here, before the session manager is invoked;
// the manager forwards raw values and never re-validates them.
package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginValues is the login form: both fields required, email well-formed.
type LoginValues struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Validate returns a user-facing message for the first violation, or nil.
func (v LoginValues) Validate() error {
	return firstViolation(validate.Struct(v))
}

// RegisterValues is the registration form. PasswordConfirm must match
// Password; the mismatch is rejected here and never reaches the network.
type RegisterValues struct {
	Firstname       string `validate:"required"`
	Lastname        string `validate:"required"`
	Username        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required"`
	PasswordConfirm string `validate:"required,eqfield=Password"`
}

// Validate returns a user-facing message for the first violation, or nil.
func (v RegisterValues) Validate() error {
	return firstViolation(validate.Struct(v))
}

var fieldLabels = map[string]string{
	"Firstname":       "First name",
	"Lastname":        "Last name",
	"Username":        "Username",
	"Email":           "Email",
	"Password":        "Password",
	"PasswordConfirm": "Password confirmation",
}

func firstViolation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return errors.New(messageFor(verrs[0]))
}

func messageFor(fe validator.FieldError) string {
	label := fe.Field()
	if l, ok := fieldLabels[fe.Field()]; ok {
		label = l
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "eqfield":
		return "Passwords do not match"
	default:
		return label + " is invalid"
	}
}
