package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notflix/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register creates an account and leaves it signed in with a default profile.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.state.Session.SignUp(ctx, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	a.printCurrentProfile()
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.state.Session.SignIn(ctx, email, string(password)); err != nil {
		return err
	}

	a.setMode(ctx, ModeOnline)
	fmt.Fprintln(a.out, "Login successful")
	a.printCurrentProfile()
	return nil
}

// Logout signs out locally first; remote revocation is best effort.
func (a *App) Logout(ctx context.Context) error {
	a.playing = nil
	clear(a.seen)
	if err := a.state.Session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	password, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.state.Session.ChangePassword(ctx, string(password)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This deletes the account and every profile. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	a.playing = nil
	clear(a.seen)
	if err := a.state.Session.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
