package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/maloquacious/dogcenter/internal/reminder"
	"github.com/maloquacious/dogcenter/internal/store"
	"github.com/maloquacious/dogcenter/internal/validate"
)

var (
	bannerColor = color.New(color.FgYellow, color.Bold)
	nameColor   = color.New(color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

// printBanner writes the reminder line; empty reminders print nothing.
func printBanner(w io.Writer, r reminder.Reminder) {
	if !r.IsActive() {
		return
	}
	fmt.Fprintln(w, bannerColor.Sprint(r.String()))
}

func printDogs(w io.Writer, dogs []store.DogRecord) {
	if len(dogs) == 0 {
		fmt.Fprintln(w, dimColor.Sprint("no dogs registered"))
		return
	}
	for _, d := range dogs {
		fmt.Fprintf(w, "%4d  %s  %s\n", d.ID, d.FeedingTime, nameColor.Sprint(d.Name))
	}
}

// userError renders validation failures the way the alert dialog titled them.
func userError(err error) error {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s: %s", verr.Title(), verr.Error())
	}
	return err
}
