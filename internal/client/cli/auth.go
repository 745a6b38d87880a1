package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/evmarket/internal/client/api"
	"github.com/dmitrijs2005/evmarket/internal/client/session"
	"github.com/dmitrijs2005/evmarket/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates the account via the
// AuthService. It does not log the user in.
//
// The password byte slice is wiped before returning. Backend messages such
// as "Email already exists" are printed verbatim.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter name", a.output())
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.output())
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone", a.output())
	if err != nil {
		return err
	}

	password, err := getPassword(a.output())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := api.RegisterRequest{UserName: userName, Email: email, Password: string(password), Phone: phone}
	if _, err := a.authService.Register(ctx, req); err != nil {
		a.printf("Registration failed: %s\n", err)
		return err
	}

	a.printf("Account created, you can log in now.\n")
	return nil
}

// Login prompts for credentials and authenticates. On success the session
// is persisted, the cookie is set and the user lands on the home page.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.output())
	if err != nil {
		return err
	}

	password, err := getPassword(a.output())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnavailable):
			a.printf("Server unavailable, try again later.\n")
		default:
			a.printf("Login unsuccessful: %s\n", err)
		}
		return err
	}

	a.logger.Info(ctx, "login successful", "user", u.UserID)
	a.printf("Welcome, %s!\n", u.UserName)
	a.setPath("/")
	return nil
}

// Logout drops the local session and returns to the login page.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.printf("Logout failed: %s\n", err)
		return err
	}
	a.printf("Logged out.\n")
	a.setPath("/login")
	return nil
}

// WhoAmI prints the cached profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.Profile(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			a.printf("Not logged in.\n")
		}
		return err
	}

	a.printf("%s <%s>\n", u.UserName, u.UserEmail)
	a.printf("  id:     %s\n", u.UserID)
	a.printf("  phone:  %s\n", u.Phone)
	a.printf("  role:   %s\n", u.Role.Name())
	a.printf("  status: %s\n", u.UserStatus)
	return nil
}
