package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/client/api"
	"github.com/dmitrijs2005/evmarket/internal/client/config"
	"github.com/dmitrijs2005/evmarket/internal/client/services"
	"github.com/dmitrijs2005/evmarket/internal/client/session"
	"github.com/dmitrijs2005/evmarket/internal/client/storage"
	"github.com/dmitrijs2005/evmarket/internal/logging"
)

// sessionControl is the part of session.Manager the App drives directly.
type sessionControl interface {
	CurrentUser(ctx context.Context) (*session.User, bool)
	Token(ctx context.Context) (string, bool)
	SyncCookie(ctx context.Context) bool
	Start(ctx context.Context)
	Stop()
	Running() bool
}

type App struct {
	config      *config.Config
	authService services.AuthService
	sessions    sessionControl
	notifier    *session.Notifier
	db          *sql.DB
	logger      logging.Logger

	// web fetches gateway pages with the session cookie jar.
	web  *http.Client
	site *url.URL

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	path string
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.APIBaseURL, api.WithLogger(logger))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cookies, err := session.NewJarCookies(c.SiteURL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:   c,
		notifier: session.NewNotifier(),
		db:       db,
		logger:   logger,
		site:     cookies.Site(),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		path:     "/",
		web: &http.Client{
			Jar:     cookies.Jar(),
			Timeout: 10 * time.Second,
			// the guard answers with redirects; report them instead of following
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
	}

	mgr := session.NewManager(session.Options{
		DB:               db,
		Cookies:          cookies,
		Notifier:         a.notifier,
		Navigator:        a,
		Logger:           logger.With("component", "session"),
		CheckInterval:    c.ExpiryCheckInterval,
		CookieMaxAge:     c.CookieMaxAge,
		CapCookieToToken: c.CapCookieToToken,
	})
	a.sessions = mgr
	a.authService = services.NewAuthService(apiClient, mgr)

	return a, nil
}

// Run starts the expiry watchdog, prints session notifications and blocks in
// the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	a.sessions.Start(ctx)

	events, unsubscribe := a.notifier.Subscribe()
	defer unsubscribe()
	go a.watchEvents(ctx, events)

	a.Root(ctx)
}

// Close stops the watchdog and releases local storage.
func (a *App) Close() {
	if a.sessions != nil {
		a.sessions.Stop()
	}
	if a.notifier != nil {
		a.notifier.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "close database", "error", err)
		}
	}
}

func (a *App) watchEvents(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			// logout prints its own message
			if e.Reason != session.ReasonLogout {
				a.printf("Session ended (%s)\n", e.Reason)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	if a.sessions == nil {
		return false
	}
	_, ok := a.sessions.CurrentUser(ctx)
	return ok
}

func (a *App) printf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.output(), format, args...)
}

func (a *App) output() io.Writer {
	if a.out == nil {
		return os.Stdout
	}
	return a.out
}
