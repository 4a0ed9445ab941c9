package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/healthcomp/internal/client/api"
	"github.com/dmitrijs2005/healthcomp/internal/client/client"
	"github.com/dmitrijs2005/healthcomp/internal/client/services"
	"github.com/dmitrijs2005/healthcomp/internal/logging"
)

type App struct {
	core   *client.App
	api    *api.Service
	auth   services.AuthService
	logger logging.Logger

	reader *bufio.Reader
	out    io.Writer

	userName string
}

func NewApp(core *client.App, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		core:   core,
		api:    core.API,
		auth:   core.Auth,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the healthcomp CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		a.refreshUserName(ctx)
	}
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(lineReader{a.reader}))
}

func (a *App) isLoggedIn() bool {
	s, err := a.auth.Status(context.Background())
	return err == nil && s.LoggedIn
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(logged out)"
	}
	if a.userName == "" {
		return "(logged in)"
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// refreshUserName loads the prompt name; failures only leave it blank.
func (a *App) refreshUserName(ctx context.Context) {
	me, err := a.api.Me(ctx)
	if err != nil {
		a.logger.Debug(ctx, "could not load current user", "error", err)
		a.userName = ""
		return
	}
	a.userName = me.Username
}

// lineReader hands the scanner at most one line per Read so that prompts
// issued by commands keep reading from the same buffered input.
type lineReader struct {
	r *bufio.Reader
}

func (l lineReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	return n, nil
}
