package cli

import (
	"context"
	"fmt"
	"os"
)

// Whoami fetches the current account from the server and prints it.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.session.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	if user.Profession != "" {
		fmt.Printf("  profession: %s\n", user.Profession)
	}
	if user.City != "" {
		fmt.Printf("  city: %s\n", user.City)
	}
	if user.MonthlyIncome > 0 {
		fmt.Printf("  monthly income: %.2f\n", user.MonthlyIncome)
	}
	if user.LastLogin != "" {
		fmt.Printf("  last login: %s\n", user.LastLogin)
	}
	return nil
}

// UpdateProfile prompts for the new name/email and replaces the profile.
// Empty input keeps the current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	current := a.session.CurrentUser()
	if current == nil {
		return fmt.Errorf("not logged in")
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("New name [%s]", current.Name), os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = current.Name
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("New email [%s]", current.Email), os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		email = current.Email
	}

	user, err := a.session.UpdateProfile(ctx, name, email)
	if err != nil {
		return err
	}

	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}

// ChangePassword prompts for the current and new password and delegates to
// the server. The session and tokens stay as they are.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}

	next, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.ChangePassword(ctx, current, next); err != nil {
		return err
	}

	fmt.Println("Password changed")
	return nil
}

// Refresh rotates the token pair using the stored refresh token.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.session.Refresh(ctx); err != nil {
		return err
	}
	fmt.Println("Tokens refreshed")
	return nil
}
