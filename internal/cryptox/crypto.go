// Package cryptox holds the password digest functions used by the credential
// table. A Digester combines a record salt with a plaintext password into the
// value stored in place of the password.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Digest names accepted by New.
const (
	DigestArgon2ID = "argon2id"
	DigestSHA256   = "sha256"
)

// Digester is a deterministic one-way function of (salt, password).
type Digester interface {
	Digest(salt, password string) []byte
}

// Argon2ID digests with argon2.IDKey using the salt as the argon2 salt.
type Argon2ID struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

func (a *Argon2ID) Digest(salt, password string) []byte {
	return argon2.IDKey([]byte(password), []byte(salt), a.Time, a.Memory, a.Threads, a.KeyLen)
}

// SHA256 digests sha256(salt || password). It is cheap and meant for tests
// and tables where the digest cost does not matter.
type SHA256 struct{}

func (SHA256) Digest(salt, password string) []byte {
	h := sha256.New()
	h.Write([]byte(salt))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// New returns the digester registered under name. Argon2 parameters are taken
// from params and ignored for other digests.
func New(name string, params Argon2ID) (Digester, error) {
	switch name {
	case DigestArgon2ID:
		p := params
		return &p, nil
	case DigestSHA256:
		return SHA256{}, nil
	default:
		return nil, fmt.Errorf("unknown digest %q", name)
	}
}

// Equal reports whether two digests match, in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
