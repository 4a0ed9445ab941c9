package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/healthcomp/internal/timex"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email and password and stores the issued token pair.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	err = a.auth.Login(ctx, email, string(password))
	clear(password)
	if err != nil {
		return err
	}
	a.refreshUserName(ctx)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the token pair and every cached resource.
func (a *App) Logout(ctx context.Context) error {
	if err := a.core.RequireSession(ctx); err != nil {
		return err
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the current user and the state of the session.
func (a *App) WhoAmI(ctx context.Context) error {
	session, err := a.auth.Status(ctx)
	if err != nil {
		return err
	}
	if !session.LoggedIn {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	me, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	a.userName = me.Username

	fmt.Fprintf(a.out, "%s (%s %s, %s), id %s\n", me.Username, me.FirstName, me.LastName, me.Email, me.ID)
	if !session.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Access token expires %s\n", humanize.Time(session.ExpiresAt))
	}

	if !me.StravaLinked() {
		fmt.Fprintln(a.out, "Strava: not linked (see 'stravaurl')")
		return nil
	}
	synced := "never synced"
	if me.StravaLastSyncedAt != nil {
		if t, err := timex.Parse(*me.StravaLastSyncedAt, time.Local); err == nil {
			synced = "last synced " + humanize.Time(t)
		}
	}
	fmt.Fprintf(a.out, "Strava: athlete %d, %s\n", *me.StravaAthleteID, synced)
	return nil
}
