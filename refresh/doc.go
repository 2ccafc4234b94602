// Package refresh implements the lifecycle of opaque rotating refresh tokens.
//
// # Token format
//
// A token id is 32 bytes from crypto/rand encoded as unpadded base64url. The id is
// the store key and carries no data of its own; everything else lives in the
// [session.RefreshSession] it points to.
//
// # Rotation
//
// [Manager.RotateToken] saves the successor before deleting the predecessor. A
// rotated id is gone from the store, so replaying it yields
// [ErrInvalidRefreshToken]. Two concurrent rotations of the same id can both
// succeed; there is no compare-and-delete.
//
// # Architecture boundaries
//
// This package owns id generation, expiry gating and rotation order. Redis access
// belongs to package session; user lookups and access tokens belong to the Engine.
//
// # What this package must NOT do
//
//   - Import tokenAuth or jwt.
//   - Retry failed store calls.
//   - Log token ids.
package refresh
