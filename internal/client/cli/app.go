package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/courtside/internal/client/config"
	"github.com/dmitrijs2005/courtside/internal/client/core"
	"github.com/dmitrijs2005/courtside/internal/client/session"
	"github.com/dmitrijs2005/courtside/internal/common"
)

type App struct {
	core   *core.Core
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	cc, err := core.New(ctx, c)
	if err != nil {
		return nil, err
	}
	return &App{core: cc, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.core.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.core.Session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.core.Session.IsAdmin()
}

// report prints err for the user and returns it unchanged.
func (a *App) report(err error) error {
	if err != nil {
		fmt.Fprintln(a.out, "error:", common.Message(err))
	}
	return err
}

// watchSession tells the user when a background renewal ends the session.
func (a *App) watchSession() (unsubscribe func()) {
	var last session.Status
	return a.core.Session.Subscribe(func(s session.Snapshot) {
		if s.Status == last {
			return
		}
		last = s.Status
		if s.Status == session.StatusFailed && session.IsSessionExpired(s.Err) {
			fmt.Fprintln(a.out, "Session expired, please log in again")
		}
	})
}
