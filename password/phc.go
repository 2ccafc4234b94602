package password

import (
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const phcAlgorithm = "argon2id"

var phcEncoding = base64.StdEncoding

// phc is the decoded form of
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<key>
type phc struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func (p phc) String() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		phcAlgorithm, argon2.Version,
		p.params.Memory, p.params.Time, p.params.Parallelism,
		phcEncoding.EncodeToString(p.salt),
		phcEncoding.EncodeToString(p.key),
	)
}

func parsePHC(encoded string) (phc, error) {
	var out phc

	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" {
		return out, fmt.Errorf("%w: want 5 '$' separated fields", ErrMalformedHash)
	}
	if fields[1] != phcAlgorithm {
		return out, fmt.Errorf("%w: algorithm %q", ErrIncompatibleHash, fields[1])
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil {
		return out, fmt.Errorf("%w: version: %v", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return out, fmt.Errorf("%w: argon2 version %d", ErrIncompatibleHash, version)
	}

	var (
		memory, time uint32
		threads      uint8
	)
	if n, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil || n != 3 {
		return out, fmt.Errorf("%w: parameters %q", ErrMalformedHash, fields[3])
	}
	if memory < minMemoryKB || time < 1 || threads < 1 {
		return out, fmt.Errorf("%w: parameters below minimum", ErrMalformedHash)
	}

	salt, err := phcEncoding.DecodeString(fields[4])
	if err != nil || len(salt) < minSaltLength {
		return out, fmt.Errorf("%w: salt", ErrMalformedHash)
	}
	key, err := phcEncoding.DecodeString(fields[5])
	if err != nil || len(key) == 0 {
		return out, fmt.Errorf("%w: key", ErrMalformedHash)
	}

	out.params = Argon2Params{
		Memory:      memory,
		Time:        time,
		Parallelism: threads,
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(key)),
	}
	out.salt = salt
	out.key = key
	return out, nil
}
