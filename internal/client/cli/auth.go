package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates a new account via
// the session service. A successful register leaves the user logged in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	rawIncome, err := getSimpleText(a.reader, "Monthly income (optional)", os.Stdout)
	if err != nil {
		return err
	}
	var income float64
	if rawIncome != "" {
		income, err = strconv.ParseFloat(rawIncome, 64)
		if err != nil {
			return fmt.Errorf("invalid monthly income %q: %w", rawIncome, err)
		}
	}

	user, err := a.session.Register(ctx, name, email, password, income)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s!\n", user.Name)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", user.Email)
	return nil
}

// Logout ends the session. Local cleanup always succeeds, so this never
// fails because of the server.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}
