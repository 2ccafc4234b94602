// Package jwt encodes and verifies the short-lived access tokens handed to clients.
//
// Tokens carry sub, iss, iat, exp and a role claim. They are signed with a
// single key injected at construction (HS256 by default, Ed25519 optional) and
// are never persisted, so an issued token stays usable until it expires.
//
// # Architecture boundaries
//
// This package owns claim layout and signature checks. Session lookup,
// account status and request trust decisions belong to the Engine.
//
// # What this package must NOT do
//
//   - Access Redis, the user store or any other I/O.
//   - Import tokenAuth, session or refresh.
//   - Hold process-wide mutable state (keys live on the Manager).
package jwt
