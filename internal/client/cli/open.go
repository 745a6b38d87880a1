package cli

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/token"
)

// Open navigates to path on the gateway, sending the session cookie after
// syncing it from the stored credential. When the route guard redirects, the
// user follows it like a browser would.
func (a *App) Open(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("bad path %q: %w", path, err)
	}
	a.setPath(ref.Path)

	// every page load restores a cookie the jar has dropped
	if a.sessions != nil {
		a.sessions.SyncCookie(ctx)
	}

	target := a.site.ResolveReference(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return err
	}

	resp, err := a.web.Do(req)
	if err != nil {
		a.printf("Gateway unavailable: %s\n", err)
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTemporaryRedirect, http.StatusFound, http.StatusSeeOther, http.StatusMovedPermanently, http.StatusPermanentRedirect:
		loc, err := resp.Location()
		if err != nil {
			return fmt.Errorf("redirect without location: %w", err)
		}
		a.setPath(loc.Path)
		a.printf("%s -> redirected to %s\n", path, loc.Path)
	default:
		a.printf("%s -> %s\n", path, resp.Status)
	}
	return nil
}

// Status prints the current page, the session and the watchdog state.
func (a *App) Status(ctx context.Context) error {
	a.printf("page:     %s\n", a.CurrentPath())

	u, ok := a.sessions.CurrentUser(ctx)
	if !ok {
		a.printf("session:  none\n")
	} else {
		a.printf("session:  %s (%s)\n", u.UserName, u.Role.Name())
		if tok, ok := a.sessions.Token(ctx); ok {
			a.printf("expires:  in %s\n", token.ExpiresIn(tok, time.Now()).Round(time.Second))
		}
	}

	watchdog := "stopped"
	if a.sessions.Running() {
		watchdog = "running"
	}
	a.printf("watchdog: %s\n", watchdog)
	return nil
}
