package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/foodflow/internal/store"
)

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}

	notifications, err := a.store.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", a.status())
	if len(notifications) > 0 {
		fmt.Fprintln(a.out, "While you were away:")
		for _, n := range notifications {
			fmt.Fprintln(a.out, "  •", n)
		}
	}
	return nil
}

func (a *App) Signup(ctx context.Context) error {
	roleText, err := GetChoice(a.reader, "Account type:", []string{"user", "business"}, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	role := store.Role(roleText)

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Display name", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password (8+ chars, a capital and a number)", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		fmt.Fprintln(a.out, "Passwords do not match")
		return fmt.Errorf("passwords do not match")
	}

	secQ, err := GetChoice(a.reader, "Security question (for password recovery):", store.SecurityQuestions, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	secA, err := GetSimpleText(a.reader, "Answer", a.out)
	if err != nil {
		return err
	}

	if err := a.store.Signup(ctx, role, username, password, name, secQ, secA); err != nil {
		fmt.Fprintln(a.out, "Signup failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", a.status())
	return nil
}

func (a *App) Forgot(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	question, err := a.store.SecurityQuestion(username)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot recover password:", err)
		return err
	}

	answer, err := GetSimpleText(a.reader, question, a.out)
	if err != nil {
		return err
	}
	newPassword, err := GetPassword("New password", a.out)
	if err != nil {
		return err
	}

	if err := a.store.ResetPassword(ctx, username, answer, newPassword); err != nil {
		fmt.Fprintln(a.out, "Password reset failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Password reset! You can now log in.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
