// Package middleware adapts tokenAuth.Engine to net/http.
//
// # Trust filter
//
// [Authenticate] reads "Authorization: Bearer <token>", asks the Engine for a
// principal and stores it in the request context. It never writes a
// response; a missing or rejected token leaves the request anonymous.
//
// # Guards
//
//   - [RequireAuthenticated] returns 401 for anonymous or disabled principals
//     and 403 for locked ones.
//   - [RequireRole] returns 403 when the principal lacks the role.
//
// Guard responses are JSON bodies of the form {"error_code","error_message"}.
//
// This package does not parse JWTs or touch Redis; every decision is
// delegated to the Engine.
package middleware
