package session

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/client/storage"
	"github.com/dmitrijs2005/evmarket/internal/common"
	"github.com/dmitrijs2005/evmarket/internal/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeCookies struct {
	mu     sync.Mutex
	set    map[string]*http.Cookie
	writes []*http.Cookie
}

func newFakeCookies() *fakeCookies {
	return &fakeCookies{set: make(map[string]*http.Cookie)}
}

func (f *fakeCookies) Cookie(name string) (*http.Cookie, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.set[name]
	return c, ok
}

func (f *fakeCookies) SetCookie(c *http.Cookie) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, c)
	if c.MaxAge < 0 {
		delete(f.set, c.Name)
		return
	}
	f.set[c.Name] = c
}

func (f *fakeCookies) Writes() []*http.Cookie {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Cookie(nil), f.writes...)
}

func (f *fakeCookies) Drop(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.set, name)
}

type fakeNavigator struct {
	mu        sync.Mutex
	path      string
	redirects []string
	notices   []string
}

func (n *fakeNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *fakeNavigator) Redirect(path, notice string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.redirects = append(n.redirects, path)
	n.notices = append(n.notices, notice)
	n.path = path
}

func (n *fakeNavigator) Redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.redirects...)
}

type fixture struct {
	db       *sql.DB
	clock    *fakeClock
	cookies  *fakeCookies
	notifier *Notifier
	nav      *fakeNavigator
	m        *Manager
}

func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	t.Helper()

	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		db:       db,
		clock:    newFakeClock(),
		cookies:  newFakeCookies(),
		notifier: NewNotifier(),
		nav:      &fakeNavigator{path: "/dashboard"},
	}
	t.Cleanup(f.notifier.Close)

	opts := Options{
		DB:            db,
		Cookies:       f.cookies,
		Notifier:      f.notifier,
		Navigator:     f.nav,
		Clock:         f.clock.Now,
		CheckInterval: 10 * time.Millisecond,
	}
	if mutate != nil {
		mutate(&opts)
	}
	f.m = NewManager(opts)
	t.Cleanup(f.m.Stop)
	return f
}

func (f *fixture) mint(t *testing.T, ttl time.Duration, role common.Role) string {
	t.Helper()
	tok, err := token.Sign(token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(f.clock.Now().Add(ttl))},
		UserID:           "42",
		Role:             role,
	}, []byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func (f *fixture) stored(t *testing.T) map[string][]byte {
	t.Helper()
	rows, err := f.db.Query(`SELECT key, value FROM metadata`)
	require.NoError(t, err)
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var k string
		var v []byte
		require.NoError(t, rows.Scan(&k, &v))
		out[k] = v
	}
	require.NoError(t, rows.Err())
	return out
}

func (f *fixture) putRaw(t *testing.T, key string, value []byte) {
	t.Helper()
	_, err := f.db.Exec(`INSERT INTO metadata(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	require.NoError(t, err)
}

var alice = User{
	UserID:     "42",
	UserName:   "Alice",
	UserEmail:  "alice@example.org",
	Phone:      "+84 900 000 000",
	Role:       common.RoleUser,
	UserStatus: "ACTIVE",
}

func cookieWithValue(v string) *http.Cookie {
	return &http.Cookie{Name: common.TokenCookieName, Value: v, Path: "/", MaxAge: 3600}
}
