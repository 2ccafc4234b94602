// Package session persists refresh sessions in Redis.
//
// Each refresh token id maps to one key (prefix + id) holding a small JSON
// record {userId, createdAt, expiresAt}. Keys expire with the refresh
// duration; the explicit expiresAt field is what callers check.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations) and the [RefreshSession]
// model. Token id generation, rotation ordering and account checks belong to
// the refresh package and the Engine.
//
// # What this package must NOT do
//
//   - Import tokenAuth, jwt or refresh (no upward imports).
//   - Embed the token id inside the stored record.
//   - Retry failed Redis calls.
package session
