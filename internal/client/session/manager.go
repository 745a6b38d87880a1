package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/evmarket/internal/common"
	"github.com/dmitrijs2005/evmarket/internal/dbx"
	"github.com/dmitrijs2005/evmarket/internal/logging"
	"github.com/dmitrijs2005/evmarket/internal/token"
)

// Keys of the two durable slots.
const (
	KeyToken    = "token"
	KeyUserData = "userData"
)

// DefaultPublicPaths are the pages the watchdog never redirects away from.
var DefaultPublicPaths = []string{"/login", "/register", "/", "/xe-dien"}

// ExpiredNotice is shown to the user when the watchdog ends their session.
const ExpiredNotice = "Your session has expired. Please log in again."

// Navigator is implemented by the UI that owns the current page.
type Navigator interface {
	CurrentPath() string
	// Redirect leaves the current page for path after showing notice.
	Redirect(path, notice string)
}

// Options configure a Manager. Zero values fall back to defaults.
type Options struct {
	// DB is the client database. Nil means no durable storage is available.
	DB        *sql.DB
	Cookies   CookieStore
	Notifier  *Notifier
	Navigator Navigator
	Logger    logging.Logger
	Clock     func() time.Time

	CheckInterval time.Duration
	CookieMaxAge  time.Duration
	// CapCookieToToken shortens the cookie to the credential's own expiry.
	CapCookieToToken bool
	PublicPaths      []string
}

// Manager is the single owner of session state. It is safe for concurrent
// use; store operations are serialised by one mutex and notifications are
// published after it is released.
type Manager struct {
	db        *sql.DB
	repo      metadata.Repository
	cookies   CookieStore
	notifier  *Notifier
	navigator Navigator
	logger    logging.Logger
	now       func() time.Time

	interval         time.Duration
	cookieMaxAge     time.Duration
	capCookieToToken bool
	publicPaths      map[string]struct{}

	mu    sync.Mutex
	navMu sync.RWMutex

	runMu   sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewManager(opts Options) *Manager {
	m := &Manager{
		db:               opts.DB,
		cookies:          opts.Cookies,
		notifier:         opts.Notifier,
		navigator:        opts.Navigator,
		logger:           opts.Logger,
		now:              opts.Clock,
		interval:         opts.CheckInterval,
		cookieMaxAge:     opts.CookieMaxAge,
		capCookieToToken: opts.CapCookieToToken,
		publicPaths:      make(map[string]struct{}),
	}

	if m.db != nil {
		m.repo = metadata.NewSQLiteRepository(m.db)
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.interval <= 0 {
		m.interval = time.Minute
	}
	if m.cookieMaxAge <= 0 {
		m.cookieMaxAge = common.DefaultCookieMaxAge
	}

	paths := opts.PublicPaths
	if paths == nil {
		paths = DefaultPublicPaths
	}
	for _, p := range paths {
		m.publicPaths[p] = struct{}{}
	}
	return m
}

// SetNavigator attaches the UI after construction.
func (m *Manager) SetNavigator(n Navigator) {
	m.navMu.Lock()
	m.navigator = n
	m.navMu.Unlock()
}

// Token returns the stored credential.
func (m *Manager) Token(ctx context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token(ctx)
}

// SetToken stores tok and refreshes the cookie.
func (m *Manager) SetToken(ctx context.Context, tok string) error {
	if m.repo == nil {
		return nil
	}
	if tok == "" {
		return ErrInvalidCredential
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.Set(ctx, KeyToken, []byte(tok)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	m.writeCookie(tok)
	return nil
}

// SaveSession stores a freshly issued credential together with the user's
// profile in one transaction.
func (m *Manager) SaveSession(ctx context.Context, tok string, u User) error {
	if m.repo == nil {
		return nil
	}
	if tok == "" || token.IsExpired(tok, m.now()) {
		return ErrInvalidCredential
	}

	record, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(tok)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUserData, record)
	})
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	m.writeCookie(tok)
	return nil
}

// SaveUser overwrites the cached profile, e.g. after a profile refresh.
func (m *Manager) SaveUser(ctx context.Context, u User) error {
	if m.repo == nil {
		return nil
	}

	record, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tok, ok := m.token(ctx)
	if !ok || token.IsExpired(tok, m.now()) {
		return ErrNoSession
	}
	if err := m.repo.Set(ctx, KeyUserData, record); err != nil {
		return fmt.Errorf("store session record: %w", err)
	}
	return nil
}

// RemoveToken deletes the credential and the record, expires the cookie and
// notifies subscribers asynchronously.
func (m *Manager) RemoveToken(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}

	m.mu.Lock()
	_, err := m.evict(ctx)
	m.mu.Unlock()

	m.publish(ReasonLogout)
	return err
}

// CurrentUser returns the cached profile when a valid credential backs it.
// Otherwise it clears whatever is left and reports absent.
func (m *Manager) CurrentUser(ctx context.Context) (*User, bool) {
	if m.repo == nil {
		return nil, false
	}

	m.mu.Lock()
	u, reason := m.currentUser(ctx)
	var hadState bool
	if reason != "" {
		var err error
		if hadState, err = m.evict(ctx); err != nil {
			m.logger.Error(ctx, "session eviction failed", "reason", reason, "error", err)
		}
	}
	m.mu.Unlock()

	if reason == "" {
		return u, u != nil
	}
	if hadState {
		m.logger.Info(ctx, "session evicted", "reason", reason)
		m.publish(reason)
	}
	return nil, false
}

// IsLoggedIn reports whether CurrentUser would return a user.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	_, ok := m.CurrentUser(ctx)
	return ok
}

// HasRole reports whether the current user has role.
func (m *Manager) HasRole(ctx context.Context, role common.Role) bool {
	u, ok := m.CurrentUser(ctx)
	return ok && u.Role == role
}

// IsAdmin reports whether the current user may use the admin console.
func (m *Manager) IsAdmin(ctx context.Context) bool {
	u, ok := m.CurrentUser(ctx)
	return ok && u.Role.IsAdmin()
}

// SyncCookie copies the stored credential into the cookie when the cookie
// is missing. It never overwrites an existing cookie and reports whether it
// wrote one.
func (m *Manager) SyncCookie(ctx context.Context) bool {
	if m.repo == nil || m.cookies == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tok, ok := m.token(ctx)
	if !ok {
		return false
	}
	if _, exists := m.cookies.Cookie(common.TokenCookieName); exists {
		return false
	}

	m.writeCookie(tok)
	m.logger.Debug(ctx, "token synced to cookie")
	return true
}

// currentUser returns the user, or the reason the session must be evicted.
// A read failure of the store reports absent without eviction. Callers hold mu.
func (m *Manager) currentUser(ctx context.Context) (*User, string) {
	tok, err := m.repo.Get(ctx, KeyToken)
	if err != nil {
		m.logger.Warn(ctx, "token read failed", "error", err)
		return nil, ""
	}
	if len(tok) == 0 {
		return nil, ReasonMissing
	}
	if token.IsExpired(string(tok), m.now()) {
		return nil, ReasonExpired
	}

	raw, err := m.repo.Get(ctx, KeyUserData)
	if err != nil {
		m.logger.Warn(ctx, "session record read failed", "error", err)
		return nil, ""
	}
	if len(raw) == 0 {
		return nil, ReasonMissing
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, ReasonCorrupt
	}
	return &u, ""
}

// token reads the credential. Callers hold mu.
func (m *Manager) token(ctx context.Context) (string, bool) {
	if m.repo == nil {
		return "", false
	}
	v, err := m.repo.Get(ctx, KeyToken)
	if err != nil {
		m.logger.Warn(ctx, "token read failed", "error", err)
		return "", false
	}
	if len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// evict removes both slots and the cookie and reports whether anything was
// stored before. Callers hold mu.
func (m *Manager) evict(ctx context.Context) (bool, error) {
	existing, err := m.repo.List(ctx)
	hadState := err != nil || len(existing[KeyToken]) > 0 || len(existing[KeyUserData]) > 0

	m.expireCookie()

	if err := m.repo.Delete(ctx, KeyToken, KeyUserData); err != nil {
		return hadState, fmt.Errorf("evict session: %w", err)
	}
	return hadState, nil
}

// writeCookie projects tok into the cookie. Callers hold mu.
func (m *Manager) writeCookie(tok string) {
	if m.cookies == nil {
		return
	}

	maxAge := m.cookieMaxAge
	if m.capCookieToToken {
		if left := token.ExpiresIn(tok, m.now()); left < maxAge {
			maxAge = left
		}
	}

	seconds := int(maxAge / time.Second)
	if seconds <= 0 {
		m.expireCookie()
		return
	}

	m.cookies.SetCookie(&http.Cookie{
		Name:   common.TokenCookieName,
		Value:  tok,
		Path:   "/",
		MaxAge: seconds,
	})
}

func (m *Manager) expireCookie() {
	if m.cookies == nil {
		return
	}
	m.cookies.SetCookie(&http.Cookie{
		Name:   common.TokenCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

func (m *Manager) publish(reason string) {
	if m.notifier == nil {
		return
	}
	m.notifier.Publish(Event{Kind: EventTokenRemoved, Reason: reason, At: m.now()})
}
