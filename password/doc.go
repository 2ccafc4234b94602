// Package password implements password hashing and verification.
//
// Two hashers are provided. [Bcrypt] is the default and produces standard
// $2a$ hashes. [Argon2] produces PHC strings:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Both expose NeedsUpgrade so a caller can re-hash after a successful login
// when the stored hash used weaker parameters.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (length,
// character classes) is enforced by the HTTP layer before the Engine is called.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords. Callers supply plaintext and receive hashes.
//   - Import any other tokenAuth package.
//   - Log plaintext passwords or hash parameters at runtime.
package password
