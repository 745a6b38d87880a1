// Package cli provides the interactive EV Marketplace command-line client.
//
// It wires configuration, the local session store, the backend API client
// and an interactive REPL. The App plays the part of the browser: it keeps
// the current page, carries the token cookie to the web gateway and is the
// session.Navigator the expiry watchdog redirects when a token runs out.
//
// Key features:
//   - Register / Login / Logout
//   - whoami: the cached profile
//   - open <path>: fetch a page through the route guard
//   - status: page, session and watchdog state
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
