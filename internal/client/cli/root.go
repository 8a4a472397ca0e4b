package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt status: the signed-in username, marked
// when the session is still unconfirmed by the server.
func (a *App) getStatus() string {
	snap := a.core.Session.Snapshot()
	if !snap.IsAuthenticated {
		return ""
	}
	s := snap.User.Username
	if snap.User.IsAdmin {
		s += " admin"
	}
	if snap.Provisional {
		s += " offline"
	}
	return fmt.Sprintf("(%s)", s)
}

// Root runs the interactive loop until the user exits. A restored session
// is reused; otherwise the user starts signed out.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to courtside CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Signed in as %s\n", a.core.Session.User().Username)
	}

	unsubscribe := a.watchSession()
	defer unsubscribe()

	runREPL(ctx, a, a.getStatus, a.reader)
}
