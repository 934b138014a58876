package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophfav/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return a.fail(err)
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	password2, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password2)

	msg, err := a.client.Register(ctx, userName, string(password), string(password2))
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return a.fail(err)
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, userName, string(password)); err != nil {
		return a.fail(err)
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) List(ctx context.Context) error {
	favs, err := a.client.ListFavourites(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.printFavourites(favs)
	return nil
}

func (a *App) Add(ctx context.Context, itemID string) error {
	favs, err := a.client.AddFavourite(ctx, itemID)
	if err != nil {
		return a.fail(err)
	}
	a.printFavourites(favs)
	return nil
}

func (a *App) Remove(ctx context.Context, itemID string) error {
	favs, err := a.client.RemoveFavourite(ctx, itemID)
	if err != nil {
		return a.fail(err)
	}
	a.printFavourites(favs)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) printFavourites(favs []string) {
	if len(favs) == 0 {
		fmt.Fprintln(a.out, "No favourites")
		return
	}
	fmt.Fprintf(a.out, "Favourites (%d): %s\n", len(favs), strings.Join(favs, ", "))
}

func (a *App) fail(err error) error {
	fmt.Fprintln(a.out, "error:", err.Error())
	return err
}
