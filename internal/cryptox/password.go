// Package cryptox implements password hashing and verification for
// FoodFlow accounts using PBKDF2-HMAC-SHA256 with a per-credential
// random salt.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/dmitrijs2005/foodflow/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

// DefaultIterations is the PBKDF2 work factor applied when the caller
// does not specify one.
const DefaultIterations = 100_000

const (
	saltSize = 16
	keySize  = 32
)

// Credential is the at-rest form of a password. Salt and Hash are
// hex-encoded; the JSON keys match the persisted document format.
type Credential struct {
	Salt       string `json:"salt"`
	Hash       string `json:"hash"`
	Iterations int    `json:"iter"`
}

// IsZero reports whether the credential carries no hash at all.
// An account with a zero credential can never be logged into.
func (c Credential) IsZero() bool {
	return c.Salt == "" && c.Hash == ""
}

// HashPassword derives a Credential from a password.
//
// If salt is empty, a fresh 16-byte random salt is generated. If
// iterations is not positive, DefaultIterations is used. Hashing an
// already-hashed Credential is the caller's bug; callers resolving
// loosely-typed records should check for an existing credential first
// (see models.ResolvePassword).
func HashPassword(password string, salt []byte, iterations int) Credential {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if len(salt) == 0 {
		salt = common.GenerateRandByteArray(saltSize)
	}
	dk := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
	return Credential{
		Salt:       hex.EncodeToString(salt),
		Hash:       hex.EncodeToString(dk),
		Iterations: iterations,
	}
}

// VerifyPassword recomputes the hash of candidate with the stored salt
// and iteration count and compares digests in constant time.
//
// A malformed stored credential (empty fields, bad hex) verifies as
// false rather than returning an error.
func VerifyPassword(stored Credential, candidate string) bool {
	if stored.Salt == "" || stored.Hash == "" {
		return false
	}
	salt, err := hex.DecodeString(stored.Salt)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(stored.Hash)
	if err != nil || len(want) != keySize {
		// a truncated hash must not shrink the comparison
		return false
	}
	iterations := stored.Iterations
	if iterations <= 0 {
		// legacy records may omit the count
		iterations = DefaultIterations
	}
	got := pbkdf2.Key([]byte(candidate), salt, iterations, keySize, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
