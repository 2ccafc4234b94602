// Package audit implements async event dispatching for credential lifecycle operations.
//
// # Components
//
//   - [Sink]: interface for event consumers (channel, JSON writer, zap, no-op).
//   - [Dispatcher]: buffered async relay with drop-if-full / block-if-full semantics.
//   - [Event]: structured audit record with timestamp, type, user, handle, IP, metadata.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide which events
// to emit. The Engine does that.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import tokenAuth or any sibling internal package.
//   - Record refresh token ids or access tokens.
package audit
