// Package flows contains pure-function orchestrators for every Engine operation.
//
// Each flow function (RunSignup, RunLogin, RunLogout, RunRefresh, RunAuthenticate)
// accepts a typed dependency struct and returns a result carrying either the
// success value or a failure kind. The Engine maps kinds to sentinel errors,
// metrics and audit events.
//
// # Architecture boundaries
//
// Flow functions coordinate calls to the user store, the JWT manager and the
// refresh session manager. They do NOT own any of these resources; ownership
// stays with the Engine.
//
// # What this package must NOT do
//
//   - Hold mutable state between calls.
//   - Import tokenAuth (to avoid import cycles).
//   - Log, emit metrics or retry. All of that happens in the Engine.
package flows
