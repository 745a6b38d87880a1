// Package common contains shared constants and sentinel errors used across
// EV marketplace components.
package common

import "time"

// TokenCookieName is the cookie carrying the raw credential to the gateway.
const TokenCookieName = "token"

// AuthorizationHeaderName and BearerPrefix describe the header fallback the
// gateway accepts when no cookie is present.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
)

// DefaultCookieMaxAge is the cookie lifetime written by the client.
const DefaultCookieMaxAge = 7 * 24 * time.Hour
