package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// getStatus renders the prompt prefix: the logged-in user and current page.
func (a *App) getStatus(ctx context.Context) string {
	s := ""
	if a.sessions != nil {
		if u, ok := a.sessions.CurrentUser(ctx); ok {
			s = u.UserName + " "
		}
	}
	if p := a.CurrentPath(); p != "" {
		s = s + p
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root prints the banner and runs the REPL on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	a.logger.Info(ctx, "cli started", "api", a.config.APIBaseURL, "site", a.config.SiteURL)
	printlnFn("Welcome to EV Marketplace CLI (type 'help' for commands)")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, scanner)
}
