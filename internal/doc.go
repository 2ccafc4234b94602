// Package internal holds refresh token id generation and parsing shared by
// the refresh manager and its tests.
//
// # Sub-packages
//
//   - audit: async event dispatch (Dispatcher + Sink implementations)
//   - flows: pure-function orchestrators for every Engine operation
//   - serverconfig: environment loading for cmd/tokenauth-server
//
// Nothing here is part of the public tokenAuth API.
package internal
