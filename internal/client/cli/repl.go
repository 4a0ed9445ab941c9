package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Workouts(ctx context.Context) error
	Workout(ctx context.Context, id string) error
	AddWorkout(ctx context.Context) error
	RemoveWorkout(ctx context.Context, id string) error

	Competitions(ctx context.Context) error
	Competition(ctx context.Context, id string) error
	Teams(ctx context.Context) error
	Users(ctx context.Context) error
	Join(ctx context.Context, code string) error
	JoinTeam(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) error
	Feed(ctx context.Context, id string) error

	StravaLink(ctx context.Context, code string) error
	StravaUnlink(ctx context.Context) error
	StravaURL(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: whoami, workouts, workout <id>, addworkout, rmworkout <id>, " +
		"competitions, competition <id>, teams, users, join <code>, jointeam <id>, stats <id>, feed <id>, " +
		"stravalink <code>, stravaunlink, stravaurl, logout, help, exit"
)

// runREPL starts a simple read-eval-print loop for the healthcomp CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the second as its argument, and dispatches to methods on 'a'.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are rendered by explain: a lost
// session prints the login redirect for the page the command stands for.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("hc %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)

		case "workouts":
			err = a.Workouts(ctx)
		case "addworkout":
			err = a.AddWorkout(ctx)
		case "competitions":
			err = a.Competitions(ctx)
		case "teams":
			err = a.Teams(ctx)
		case "users":
			err = a.Users(ctx)
		case "stravaunlink":
			err = a.StravaUnlink(ctx)
		case "stravaurl":
			err = a.StravaURL(ctx)

		case "workout", "rmworkout", "competition", "join", "jointeam", "stats", "feed", "stravalink":
			if arg == "" {
				printlnFn(fmt.Sprintf("Usage: %s <%s>", cmd, argName(cmd)))
				continue
			}
			err = runWithArg(ctx, a, cmd, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err != nil {
			printlnFn(explain(err, route(cmd, arg)))
		}
	}
}

func runWithArg(ctx context.Context, a execIface, cmd, arg string) error {
	switch cmd {
	case "workout":
		return a.Workout(ctx, arg)
	case "rmworkout":
		return a.RemoveWorkout(ctx, arg)
	case "competition":
		return a.Competition(ctx, arg)
	case "join":
		return a.Join(ctx, arg)
	case "jointeam":
		return a.JoinTeam(ctx, arg)
	case "stats":
		return a.Stats(ctx, arg)
	case "feed":
		return a.Feed(ctx, arg)
	case "stravalink":
		return a.StravaLink(ctx, arg)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func argName(cmd string) string {
	switch cmd {
	case "join", "stravalink":
		return "code"
	default:
		return "id"
	}
}
