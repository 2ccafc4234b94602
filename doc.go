// Package tokenAuth issues, validates, rotates and revokes session credentials:
// a short-lived JWT access token paired with a long-lived opaque refresh token id
// tracked in Redis.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// tokenAuth is the public surface. It exposes [Engine], [Builder], [Config], and value types
// ([AuthResult], [Principal], [MetricsSnapshot]). Flow orchestration and audit dispatch live
// under internal/ and are never exported. Access tokens are handled by package jwt, refresh
// sessions by packages session and refresh.
//
// # What this package must NOT do
//
//   - Expose Redis clients or session encoding details in its public API.
//   - Retry failed collaborator calls.
//   - Import userstore, httpapi or middleware (they import tokenAuth).
//
// # Concurrency
//
// No lock is held across I/O. Correctness relies on per-key Redis atomicity; two
// concurrent refreshes of the same id may both succeed.
package tokenAuth
