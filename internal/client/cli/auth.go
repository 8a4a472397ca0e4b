package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Register prompts for a username, email, full name and password and
// creates an account. A successful registration also signs the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	err = a.core.Auth.Register(ctx, models.Registration{
		Username: username,
		Email:    email,
		Password: string(password),
		FullName: fullName,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Registration unsuccessful:", common.Message(err))
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and authenticates. On failure the session
// stays signed out and the server message is shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.core.Auth.Login(ctx, models.Credentials{Email: email, Password: string(password)}); err != nil {
		fmt.Fprintln(a.out, "Login unsuccessful:", common.Message(err))
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", a.core.Session.User().DisplayName)
	return nil
}

// Logout ends the session locally and on the server. It never fails
// locally; a server error is only logged by the session manager.
func (a *App) Logout(ctx context.Context) error {
	if err := a.core.Auth.Logout(ctx); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	snap := a.core.Session.Snapshot()
	if !snap.IsAuthenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	u := snap.User
	fmt.Fprintf(a.out, "%s (@%s)\n", u.DisplayName, u.Username)
	if u.Email != "" {
		fmt.Fprintln(a.out, "email:", u.Email)
	}
	fmt.Fprintln(a.out, "role:", u.Role)
	if snap.Provisional {
		fmt.Fprintln(a.out, "(not yet confirmed by the server)")
	}
	return nil
}
