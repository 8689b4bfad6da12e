package cli

import (
	"context"
	"os"

	"github.com/olivierdt/skyjo-cli/internal/client/forms"
	"github.com/olivierdt/skyjo-cli/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, validates them against the login schema and
// hands them to the session manager. Validation failures never reach the
// network; auth outcomes are printed from the resulting status message.
func (a *App) Login(ctx context.Context) error {
	values := forms.LoginValues{}

	var err error
	if values.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}
	if values.Password, err = getPassword("Enter password", os.Stdout); err != nil {
		return err
	}

	if err := values.Validate(); err != nil {
		printlnFn(err.Error())
		return err
	}

	a.manager.Login(ctx, values.Email, values.Password)
	a.showOutcome()
	return nil
}

// Register prompts for the registration form, validates it (including the
// password confirmation) and forwards the raw values to the session manager.
func (a *App) Register(ctx context.Context) error {
	values := forms.RegisterValues{}

	var err error
	if values.Firstname, err = getSimpleText(a.reader, "Enter first name", os.Stdout); err != nil {
		return err
	}
	if values.Lastname, err = getSimpleText(a.reader, "Enter last name", os.Stdout); err != nil {
		return err
	}
	if values.Username, err = getSimpleText(a.reader, "Enter username", os.Stdout); err != nil {
		return err
	}
	if values.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}
	if values.Password, err = getPassword("Enter password", os.Stdout); err != nil {
		return err
	}
	if values.PasswordConfirm, err = getPassword("Confirm password", os.Stdout); err != nil {
		return err
	}

	if err := values.Validate(); err != nil {
		printlnFn(err.Error())
		return err
	}

	a.manager.Register(ctx, session.RegisterValues{
		Firstname:       values.Firstname,
		Lastname:        values.Lastname,
		Username:        values.Username,
		Email:           values.Email,
		Password:        values.Password,
		PasswordConfirm: values.PasswordConfirm,
	})
	a.showOutcome()
	return nil
}

// Logout clears the session; the manager guarantees it never fails.
func (a *App) Logout(ctx context.Context) error {
	a.manager.Logout()
	a.showOutcome()
	return nil
}

// WhoAmI prints the signed-in identity.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.manager.State()
	if s.User == nil {
		printlnFn("Not signed in.")
		return nil
	}
	printlnFn("Signed in as " + s.User.Username + " (id " + s.User.ID + ")")
	return nil
}
