package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/healthcomp/internal/client/client"
	"github.com/dmitrijs2005/healthcomp/internal/client/transport"
)

// route is the frontend page a command corresponds to; it is where the
// user is sent back to after logging in again.
func route(cmd, arg string) string {
	switch cmd {
	case "workouts", "addworkout", "rmworkout":
		return "/workouts"
	case "workout":
		return "/workouts/" + arg
	case "competitions", "join":
		return "/competitions"
	case "competition", "stats", "feed":
		return "/competitions/" + arg
	case "teams", "jointeam":
		return "/teams"
	case "users", "whoami", "stravaunlink", "stravaurl":
		return "/profile"
	case "stravalink":
		return "/strava/link"
	default:
		return "/"
	}
}

// explain turns a command error into the line shown to the user.
func explain(err error, current string) string {
	var authErr *transport.AuthError
	switch {
	case errors.As(err, &authErr):
		return fmt.Sprintf("%s\nType 'login' to sign in again (redirect: %s).", authErr.Error(), authErr.RedirectURL(current))
	case errors.Is(err, client.ErrNotLoggedIn):
		return "Not logged in. Type 'login' first."
	}

	switch {
	case transport.IsStatus(err, http.StatusNotFound):
		return "Not found."
	case transport.IsStatus(err, http.StatusTooManyRequests):
		return "Too many requests, try again later."
	case transport.IsStatus(err, http.StatusUnauthorized):
		return "Not authorized."
	}

	var se *transport.StatusError
	if errors.As(err, &se) && len(se.Body) > 0 {
		return fmt.Sprintf("Error: %s: %s", se.Error(), se.Body)
	}
	return "Error: " + err.Error()
}
