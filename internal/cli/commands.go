package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mkravets/falljournal/internal/common"
)

func (a *App) Register(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if _, err := a.userService.Register(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			printlnFn("That user name is already taken.")
		} else {
			printlnFn(err.Error())
		}
		return err
	}

	printlnFn("Success!")
	return nil
}

func (a *App) Login(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	ok, err := a.userService.Authenticate(ctx, userName, password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if !ok {
		printlnFn("Invalid user name or password.")
		return common.ErrorUnauthorized
	}

	a.userName = userName
	printlnFn("Logged in.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.userName = ""
	printlnFn("Logged out.")
	return nil
}

func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return common.ErrorUnauthorized
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	mood, err := GetSimpleText(a.reader, "Mood (optional)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	tags, err := GetTags(a.reader, os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	content, err := GetMultiline(a.reader, "Write your entry", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	entry, err := a.entryService.Save(ctx, a.userName, title, content, mood, tags, time.Time{})
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Saved as", entry.Key)
	return nil
}

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return common.ErrorUnauthorized
	}

	entries, err := a.entryService.List(ctx, a.userName)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if len(entries) == 0 {
		printlnFn("No entries yet.")
		return nil
	}

	for _, e := range entries {
		header := fmt.Sprintf("%s  %s", e.Timestamp.Format("2006-01-02 15:04"), e.Title)
		if e.Mood != "" {
			header += "  " + e.Mood
		}
		if len(e.Tags) > 0 {
			header += "  [" + strings.Join(e.Tags, ", ") + "]"
		}
		printlnFn(header)
		printlnFn(e.Content)
		printlnFn("")
	}
	return nil
}
