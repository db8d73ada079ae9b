// Package password hashes and verifies user passwords with argon2id.
//
// Hashes are stored in the self-describing PHC string format
// ($argon2id$v=19$m=...,t=...,p=...$salt$digest) so verification keeps
// working against old hashes even if the default cost parameters change.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Default argon2id parameters, per the x/crypto recommendations.
const (
	defaultMemory  uint32 = 64 * 1024
	defaultTime    uint32 = 1
	defaultThreads uint8  = 4
	saltLength            = 16
	keyLength      uint32 = 32
)

// ErrMalformedHash indicates the stored encoding could not be parsed. It is
// deliberately distinct from a password mismatch: a corrupt hash is a data
// integrity failure, never "wrong password".
var ErrMalformedHash = errors.New("password: malformed argon2id hash")

// ErrIncompatibleVersion indicates the stored hash was produced by an
// argon2 version this build cannot verify.
var ErrIncompatibleVersion = errors.New("password: incompatible argon2 version")

// Hash derives an argon2id hash of plain with a fresh random salt and
// returns the PHC-encoded string.
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generating salt: %w", err)
	}

	digest := argon2.IDKey([]byte(plain), salt, defaultTime, defaultMemory, defaultThreads, keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		defaultMemory,
		defaultTime,
		defaultThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	return encoded, nil
}

// Verify recomputes the hash of candidate using the parameters embedded in
// encoded and compares the digests in constant time. A parse failure is
// returned as an error, not a mismatch.
func Verify(encoded, candidate string) (bool, error) {
	memory, timeCost, threads, salt, digest, err := decode(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(candidate), salt, timeCost, memory, threads, uint32(len(digest)))

	if subtle.ConstantTimeEq(int32(len(digest)), int32(len(computed))) == 0 {
		return false, nil
	}
	return subtle.ConstantTimeCompare(digest, computed) == 1, nil
}

func decode(encoded string) (memory, timeCost uint32, threads uint8, salt, digest []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, ErrIncompatibleVersion
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	// argon2 panics on zero rounds/parallelism and requires at least 8KiB
	// of memory per thread; such encodings are corrupt, not verifiable.
	if timeCost == 0 || threads == 0 || memory < 8*uint32(threads) {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	if len(digest) == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	return memory, timeCost, threads, salt, digest, nil
}
