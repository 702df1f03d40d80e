package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

func (a *app) runSignup(args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	username := fs.String("username", "", "display name for the new account")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *username == "" {
		if *username, err = promptLine("Username: "); err != nil {
			return err
		}
	}
	if *email == "" {
		if *email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	msg, err := a.auth.Signup(context.Background(), *username, *email, password)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}
	if msg = strings.TrimSpace(msg); msg == "" {
		msg = "Account created."
	}
	fmt.Println(msg)
	fmt.Println("Run `payflow login` to sign in.")
	return nil
}

func (a *app) runLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *email == "" {
		if *email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	ctx := context.Background()
	result, err := a.auth.Login(ctx, *email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user := domain.User{Email: *email}
	if result.User != nil {
		user = *result.User
	}
	if err := a.store.Login(user, result.Token); err != nil {
		return fmt.Errorf("could not store session: %w", err)
	}

	// Older auth deployments return only the token; backfill the
	// cached profile from the user service. Best effort.
	if result.User == nil {
		if id, ok := a.store.UserID(); ok {
			if fetched, err := a.users.Get(ctx, id); err == nil {
				user = fetched
				_ = a.store.Login(user, result.Token)
			} else {
				a.logger.Warn("could not resolve profile after login", "error", err)
			}
		}
	}

	name := user.Name
	if name == "" {
		name = *email
	}
	fmt.Printf("Logged in as %s.\n", name)
	return nil
}

func (a *app) runLogout(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.store.Logout()
	fmt.Fprintln(os.Stdout, "Logged out.")
	return nil
}
