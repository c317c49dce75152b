package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 16
	keyLength   = 32
	timeCost    = 3
	memoryCost  = 64 * 1024
	parallelism = 2

	// maxMemoryCost caps the memory parameter accepted from an encoded hash
	// (1 GiB in KiB); anything above is treated as malformed input.
	maxMemoryCost = 1 << 20
)

var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword hashes a password using Argon2id. A fresh random salt is
// generated per call and embedded in the output, so hashing the same password
// twice yields different strings.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, timeCost, memoryCost, parallelism, keyLength)

	// Format: $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryCost, timeCost, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword recomputes the Argon2id digest using the salt and parameters
// embedded in hashedPassword and compares in constant time. Malformed input
// verifies false rather than panicking.
func VerifyPassword(password, hashedPassword string) (bool, error) {
	memory, time, threads, salt, hash, err := decodeHash(hashedPassword)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(computed, hash) == 1, nil
}

func decodeHash(encoded string) (memory, time uint32, threads uint8, salt, hash []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	// argon2.IDKey panics on zero time or parallelism, and an attacker-chosen
	// memory value would force an arbitrarily large allocation. Out-of-range
	// parameters are malformed input, not a verification error.
	if time < 1 || threads < 1 || memory < 8 || memory > maxMemoryCost {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	return memory, time, threads, salt, hash, nil
}
