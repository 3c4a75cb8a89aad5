package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Register(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fullName, err := GetSimpleText(a.reader, "Enter full name (optional)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if err := a.api.Register(ctx, username, email, password, fullName); err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if err := a.api.Login(ctx, username, password); err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.userName = username
	fmt.Println("Logged in.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		fmt.Println(err.Error())
		return err
	}
	a.userName = ""
	fmt.Println("Logged out.")
	return nil
}

func (a *App) Me(ctx context.Context) error {

	user, err := a.api.Me(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("Username: %s\nEmail: %s\nFull name: %s\nRole: %s\nRegistered: %s\n",
		user.Username, user.Email, user.FullName, user.Role, user.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
