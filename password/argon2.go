package password

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKB   = 8 * 1024
	minSaltLength = 16
	minKeyLength  = 16
)

// DefaultMaxPasswordBytes bounds argon2 input when MaxPasswordBytes is zero.
const DefaultMaxPasswordBytes = 1024

// Argon2Params are argon2id cost parameters. Memory is in KiB.
type Argon2Params struct {
	Memory           uint32
	Time             uint32
	Parallelism      uint8
	SaltLength       uint32
	KeyLength        uint32
	MaxPasswordBytes int
}

// DefaultArgon2Params is used when argon2id is selected without tuning.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (p Argon2Params) validate() error {
	var errs []error
	if p.Memory < minMemoryKB {
		errs = append(errs, fmt.Errorf("memory must be >= %d KiB", minMemoryKB))
	}
	if p.Time < 1 {
		errs = append(errs, errors.New("time must be >= 1"))
	}
	if p.Parallelism < 1 {
		errs = append(errs, errors.New("parallelism must be >= 1"))
	}
	if p.SaltLength < minSaltLength {
		errs = append(errs, fmt.Errorf("salt length must be >= %d", minSaltLength))
	}
	if p.KeyLength < minKeyLength {
		errs = append(errs, fmt.Errorf("key length must be >= %d", minKeyLength))
	}
	return errors.Join(errs...)
}

// Argon2 hashes passwords with argon2id into PHC strings.
type Argon2 struct {
	params Argon2Params
}

// NewArgon2 validates params and returns a hasher.
func NewArgon2(params Argon2Params) (*Argon2, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("argon2: %w", err)
	}
	if params.MaxPasswordBytes <= 0 {
		params.MaxPasswordBytes = DefaultMaxPasswordBytes
	}
	return &Argon2{params: params}, nil
}

// Hash derives a key from the raw password bytes. No Unicode normalization
// is applied.
func (a *Argon2) Hash(password string) (string, error) {
	if err := a.checkLength(password); err != nil {
		return "", err
	}
	if len(password) < minPassBytes {
		return "", ErrPasswordTooShort
	}

	salt := make([]byte, a.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2: salt: %w", err)
	}

	return phc{
		params: a.params,
		salt:   salt,
		key:    a.derive(password, salt, a.params),
	}.String(), nil
}

// Verify recomputes the key with the parameters stored in encoded and
// compares in constant time. A mismatch is (false, nil).
func (a *Argon2) Verify(password, encoded string) (bool, error) {
	if err := a.checkLength(password); err != nil {
		return false, err
	}
	stored, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	key := a.derive(password, stored.salt, stored.params)
	return subtle.ConstantTimeCompare(key, stored.key) == 1, nil
}

// Matches is Verify with errors folded into false.
func (a *Argon2) Matches(password, encoded string) bool {
	ok, err := a.Verify(password, encoded)
	return err == nil && ok
}

// NeedsUpgrade reports whether encoded used weaker costs or a different key
// length than the hasher's current parameters.
func (a *Argon2) NeedsUpgrade(encoded string) (bool, error) {
	stored, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	cur, old := a.params, stored.params
	return cur.Memory > old.Memory ||
		cur.Time > old.Time ||
		cur.Parallelism > old.Parallelism ||
		cur.KeyLength != old.KeyLength, nil
}

func (a *Argon2) checkLength(password string) error {
	if len(password) > a.params.MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func (a *Argon2) derive(password string, salt []byte, p Argon2Params) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Parallelism, p.KeyLength)
}
