package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/client/session"
	"github.com/dmitrijs2005/evmarket/internal/client/storage"
	"github.com/dmitrijs2005/evmarket/internal/common"
	"github.com/dmitrijs2005/evmarket/internal/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatewayApp(t *testing.T, h http.HandlerFunc) (*App, *syncBuffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	a, out := newTestApp(t, &fakeAuth{}, &fakeSessions{})
	site, err := url.Parse(srv.URL)
	require.NoError(t, err)
	a.site = site
	a.web = &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	return a, out
}

func TestOpen_FollowsGuardRedirect(t *testing.T) {
	a, out := newGatewayApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dashboard" {
			http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
			return
		}
		_, _ = io.WriteString(w, "ok")
	})

	s := &fakeSessions{}
	a.sessions = s

	require.NoError(t, a.Open(context.Background(), "/dashboard"))
	assert.Equal(t, 1, s.synced)
	assert.Equal(t, "/login", a.CurrentPath())
	assert.Contains(t, out.String(), "/dashboard -> redirected to /login")
}

func TestOpen_Allowed(t *testing.T) {
	var gotQuery string
	a, out := newGatewayApp(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, "ok")
	})

	require.NoError(t, a.Open(context.Background(), "search?q=vinfast"))
	assert.Equal(t, "/search", a.CurrentPath())
	assert.Equal(t, "q=vinfast", gotQuery)
	assert.Contains(t, out.String(), "/search?q=vinfast -> 200 OK")
}

func TestOpen_GatewayDown(t *testing.T) {
	a, out := newGatewayApp(t, func(w http.ResponseWriter, r *http.Request) {})
	a.site, _ = url.Parse("http://127.0.0.1:1")

	require.Error(t, a.Open(context.Background(), "/profile"))
	assert.Equal(t, "/profile", a.CurrentPath(), "navigation happens even when the page cannot load")
	assert.Contains(t, out.String(), "Gateway unavailable")
}

func TestOpen_RestoresDroppedCookie(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(common.TokenCookieName); err == nil {
			gotCookie = c.Value
		}
		if gotCookie == "" {
			http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cookies, err := session.NewJarCookies(srv.URL)
	require.NoError(t, err)
	mgr := session.NewManager(session.Options{DB: db, Cookies: cookies})

	tok, err := token.Sign(token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour))},
		UserID:           "7",
	}, []byte("k"))
	require.NoError(t, err)
	require.NoError(t, mgr.SaveSession(ctx, tok, session.User{UserID: "7", UserName: "alice"}))

	// the cookie outlived its max-age while the credential is still valid
	cookies.SetCookie(&http.Cookie{Name: common.TokenCookieName, Path: "/", MaxAge: -1})
	_, ok := cookies.Cookie(common.TokenCookieName)
	require.False(t, ok)

	a, out := newTestApp(t, &fakeAuth{}, &fakeSessions{})
	a.sessions = mgr
	a.site = cookies.Site()
	a.web = &http.Client{
		Jar:           cookies.Jar(),
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	require.NoError(t, a.Open(ctx, "/dashboard"))
	assert.Equal(t, tok, gotCookie)
	assert.Equal(t, "/dashboard", a.CurrentPath())
	assert.Contains(t, out.String(), "/dashboard -> 200 OK")
}
