// Package password provides salted one-way password digests.
//
// New digests are bcrypt ("$2a$..."). Verification additionally accepts
// werkzeug-style PBKDF2 digests ("pbkdf2:sha256:150000$salt$hex") so that
// accounts imported from the previous deployment keep working.
package password

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// DefaultCost is the bcrypt cost used for new digests.
const DefaultCost = bcrypt.DefaultCost

// bcryptMaxBytes is the longest input bcrypt accepts.
const bcryptMaxBytes = 72

// defaultPBKDF2Iterations is used when a legacy digest omits its iteration count.
const defaultPBKDF2Iterations = 260000

// Hasher hashes and verifies passwords.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost.
// Costs outside bcrypt's accepted range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a bcrypt digest of plaintext with a random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(bcryptInput(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches digest. Malformed digests never match.
func (h *Hasher) Verify(digest, plaintext string) bool {
	switch {
	case strings.HasPrefix(digest, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(digest), bcryptInput(plaintext)) == nil
	case strings.HasPrefix(digest, "pbkdf2:"):
		return verifyPBKDF2(digest, plaintext)
	default:
		return false
	}
}

// bcryptInput returns plaintext as bytes, pre-hashed with SHA-256 when it exceeds
// bcrypt's 72-byte limit (multi-byte characters can pass a 72-character form cap).
func bcryptInput(plaintext string) []byte {
	if len(plaintext) <= bcryptMaxBytes {
		return []byte(plaintext)
	}
	sum := sha256.Sum256([]byte(plaintext))
	return []byte(hex.EncodeToString(sum[:]))
}

// verifyPBKDF2 checks a "pbkdf2:<hash>[:<iterations>]$<salt>$<hex>" digest.
func verifyPBKDF2(digest, plaintext string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	fields := strings.Split(method, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return false
	}
	newHash, ok := hashByName(fields[1])
	if !ok {
		return false
	}
	iterations := defaultPBKDF2Iterations
	if len(fields) == 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n <= 0 {
			return false
		}
		iterations = n
	}

	expected, err := hex.DecodeString(want)
	if err != nil || len(expected) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(plaintext), []byte(salt), iterations, newHash().Size(), newHash)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

func hashByName(name string) (func() hash.Hash, bool) {
	switch name {
	case "sha256":
		return sha256.New, true
	case "sha512":
		return sha512.New, true
	case "sha1":
		return sha1.New, true
	default:
		return nil, false
	}
}
