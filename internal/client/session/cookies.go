package session

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

// CookieStore is the cookie surface shared with the gateway.
type CookieStore interface {
	// Cookie returns the named cookie if it is currently set.
	Cookie(name string) (*http.Cookie, bool)
	// SetCookie stores c; a negative MaxAge removes it.
	SetCookie(c *http.Cookie)
}

// JarCookies keeps cookies for one site in an http.CookieJar, the same jar
// the client's HTTP calls to that site use.
type JarCookies struct {
	jar  http.CookieJar
	site *url.URL
}

// NewJarCookies creates a public-suffix aware jar scoped to siteURL.
func NewJarCookies(siteURL string) (*JarCookies, error) {
	u, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("parse site url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("site url %q must be absolute", siteURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &JarCookies{jar: jar, site: u}, nil
}

// Jar exposes the underlying jar for an http.Client.
func (j *JarCookies) Jar() http.CookieJar { return j.jar }

// Site is the URL the cookies are scoped to.
func (j *JarCookies) Site() *url.URL { return j.site }

func (j *JarCookies) Cookie(name string) (*http.Cookie, bool) {
	for _, c := range j.jar.Cookies(j.site) {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func (j *JarCookies) SetCookie(c *http.Cookie) {
	j.jar.SetCookies(j.site, []*http.Cookie{c})
}
