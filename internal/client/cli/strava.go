package cli

import (
	"context"
	"fmt"
)

func (a *App) StravaLink(ctx context.Context, code string) error {
	msg, err := a.api.Strava.Link(ctx, code)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg.Message)
	return nil
}

func (a *App) StravaUnlink(ctx context.Context) error {
	msg, err := a.api.Strava.Unlink(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg.Message)
	return nil
}

// StravaURL prints the page to open on a phone to start linking.
func (a *App) StravaURL(_ context.Context) error {
	fmt.Fprintf(a.out, "Open %s to link your Strava account\n", a.core.StravaLinkURL())
	return nil
}
