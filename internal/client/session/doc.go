// Package session owns the client's authentication state.
//
// A single Manager is the only reader and writer of the three places a
// session lives:
//
//   - the durable store (SQLite metadata table): the raw credential under
//     "token" and the cached profile under "userData";
//   - the "token" cookie in the client's cookie jar, a projection of the
//     durable store that the gateway's route guard reads;
//   - the Notifier, which tells subscribers that the credential was removed.
//
// Invariant: a session record never outlives a valid credential. Every
// CurrentUser call re-checks the credential's expiry and evicts both slots
// when it is missing, expired or undecodable.
//
// The Manager also runs the expiry watchdog (Start/Stop): a ticker that
// evicts an expired credential without user interaction and sends the user
// to /login unless they are on a public page.
//
// A Manager built without a database behaves like code running outside the
// client: reads report "absent" and writes are skipped.
package session
