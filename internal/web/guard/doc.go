// Package guard is the route guard of the web gateway.
//
// Every page navigation is classified against a static prefix table and
// either passed through or redirected before any page handler runs:
//
//  1. auth-only page (/login, /register) with a credential: redirect to /
//  2. user page without a credential: redirect to /login
//  3. admin page without a credential: redirect to /login
//  4. anything else: allow
//
// The credential comes from the "token" cookie or a bearer Authorization
// header. By default an expired or undecodable credential counts as absent
// and admin pages additionally require an ADMIN or MODERATOR role claim.
package guard
