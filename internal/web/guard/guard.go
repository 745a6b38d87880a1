package guard

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/common"
	"github.com/dmitrijs2005/evmarket/internal/logging"
	"github.com/dmitrijs2005/evmarket/internal/token"
)

type Action int

const (
	Allow Action = iota
	Redirect
)

func (a Action) String() string {
	if a == Redirect {
		return "redirect"
	}
	return "allow"
}

// Decision is the outcome for one request.
type Decision struct {
	Action   Action
	Location string
	Class    Class
	// Claims of the credential, when one counted as present.
	Claims *token.Claims
}

func allow(c Class, claims *token.Claims) Decision {
	return Decision{Action: Allow, Class: c, Claims: claims}
}

func redirect(to string, c Class, claims *token.Claims) Decision {
	return Decision{Action: Redirect, Location: to, Class: c, Claims: claims}
}

// Decide applies the route table to a path given only whether a credential
// is present. It is the presence-only policy; Guard.Decide layers credential
// checks on top of it.
func Decide(routes Routes, path string, hasCredential bool) Decision {
	c := routes.Classify(path)
	switch {
	case c == ClassAuthOnly && hasCredential:
		return redirect("/", c, nil)
	case c == ClassUserProtected && !hasCredential:
		return redirect("/login", c, nil)
	case c == ClassAdminProtected && !hasCredential:
		return redirect("/login", c, nil)
	}
	return allow(c, nil)
}

type Options struct {
	Routes Routes
	// CheckExpiry treats an undecodable or expired credential as absent.
	CheckExpiry bool
	// EnforceAdminRole sends holders of a non-admin credential away from
	// admin routes.
	EnforceAdminRole bool
	// Secret, when set, makes the guard verify the HS256 signature. Expiry
	// is part of that check only when CheckExpiry is set.
	Secret  []byte
	Clock   func() time.Time
	Logger  logging.Logger
	Metrics *Metrics
}

// Guard intercepts page navigations and redirects according to the route
// table. It never modifies the credential.
type Guard struct {
	routes           Routes
	checkExpiry      bool
	enforceAdminRole bool
	secret           []byte
	now              func() time.Time
	logger           logging.Logger
	metrics          *Metrics
}

func New(opts Options) *Guard {
	g := &Guard{
		routes:           opts.Routes,
		checkExpiry:      opts.CheckExpiry,
		enforceAdminRole: opts.EnforceAdminRole,
		secret:           opts.Secret,
		now:              opts.Clock,
		logger:           opts.Logger,
		metrics:          opts.Metrics,
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}
	return g
}

// Decide classifies path and decides for the raw credential ("" when the
// request carries none).
func (g *Guard) Decide(path, credential string) Decision {
	claims, present := g.evaluate(credential)

	d := Decide(g.routes, path, present)
	d.Claims = claims
	if d.Action == Redirect || d.Class != ClassAdminProtected || !g.enforceAdminRole {
		return d
	}

	if claims == nil || !claims.Role.IsAdmin() {
		return redirect("/", d.Class, claims)
	}
	return d
}

// evaluate reports whether credential counts as present and returns its
// claims when they could be read.
func (g *Guard) evaluate(credential string) (*token.Claims, bool) {
	if credential == "" {
		return nil, false
	}

	if len(g.secret) > 0 {
		var claims *token.Claims
		var err error
		if g.checkExpiry {
			claims, err = token.Verify(credential, g.secret, g.now())
		} else {
			claims, err = token.VerifySignature(credential, g.secret)
		}
		if err != nil {
			return nil, false
		}
		return claims, true
	}

	claims := token.Decode(credential)
	if g.checkExpiry && token.IsExpired(credential, g.now()) {
		return nil, false
	}
	return claims, true
}

// Middleware enforces decisions in front of next. Redirects use 307 so the
// method is preserved.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if g.routes.Classify(path) == ClassStatic {
			g.metrics.observe(allow(ClassStatic, nil))
			next.ServeHTTP(w, r)
			return
		}

		d := g.Decide(path, Credential(r))
		g.metrics.observe(d)

		if d.Action == Redirect {
			g.logger.Info(r.Context(), "guard redirect", "path", path, "class", string(d.Class), "location", d.Location)
			http.Redirect(w, r, d.Location, http.StatusTemporaryRedirect)
			return
		}

		if d.Claims != nil {
			r = r.WithContext(WithClaims(r.Context(), d.Claims))
		}
		next.ServeHTTP(w, r)
	})
}

// Credential returns the token cookie, or else the bearer token from the
// Authorization header, or "".
func Credential(r *http.Request) string {
	if c, err := r.Cookie(common.TokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get(common.AuthorizationHeaderName)
	if tok, ok := strings.CutPrefix(h, common.BearerPrefix); ok {
		return strings.TrimSpace(tok)
	}
	return ""
}

type ctxKey struct{}

// WithClaims stores the guard's view of the caller in ctx.
func WithClaims(ctx context.Context, c *token.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFromContext returns the claims set by Middleware, if any.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*token.Claims)
	return c, ok && c != nil
}
