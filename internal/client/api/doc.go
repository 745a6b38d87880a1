// Package api contains the client for the marketplace backend REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     account endpoints the session layer needs: Login and Register.
//  2. A concrete HTTP implementation (see HTTPClient) that posts JSON to
//     {base}/users/login and {base}/users/register.
//
// # Error Handling
//
// A non-2xx response becomes an *APIError whose message is the response body
// verbatim, so backend messages reach the user unchanged. errors.Is maps
// APIError values onto the sentinels: 401 and 403 match ErrUnauthorized,
// 5xx matches ErrUnavailable. Transport failures are wrapped in
// ErrUnavailable as well. Requests are never retried.
package api
