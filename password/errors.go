package password

import "errors"

var (
	// ErrPasswordTooShort is returned by Hash for inputs under 8 bytes.
	ErrPasswordTooShort = errors.New("password shorter than 8 bytes")
	// ErrPasswordTooLong is returned when an argon2 input exceeds MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password exceeds maximum length")
	// ErrMalformedHash is returned for stored hashes that do not parse.
	ErrMalformedHash = errors.New("malformed password hash")
	// ErrIncompatibleHash is returned for a well-formed hash of another
	// algorithm or argon2 version.
	ErrIncompatibleHash = errors.New("incompatible password hash")
)

const minPassBytes = 8
