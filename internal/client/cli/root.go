package cli

import (
	"context"
	"fmt"
	"strings"
)

// getStatus renders the prompt status: user, profile and mode.
func (a *App) getStatus() string {
	var parts []string
	if u := a.state.Session.User(); u != nil {
		parts = append(parts, u.Email)
		if p := a.state.Profiles.Current(); p != nil {
			parts = append(parts, "["+p.Name+"]")
		}
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Notflix CLI (type 'help' for commands)")

	if err := a.state.Start(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	}
	a.checkOnline(ctx, a.api)
	if u := a.state.Session.User(); u != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", u.Email)
		a.printCurrentProfile()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.api, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
