package common

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
)

// MakeRandHexString reads size random bytes from r and returns them hex
// encoded, so the result is twice as long as size. A nil reader falls back
// to crypto/rand.
func MakeRandHexString(r io.Reader, size int) (string, error) {
	b, err := GenerateRandByteArray(r, size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns size bytes read from r (crypto/rand when r is nil).
func GenerateRandByteArray(r io.Reader, size int) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// MakeRandString returns a string of length n whose characters are picked
// uniformly from alphabet using bytes read from r.
//
// Bytes that would bias the pick (values at or above the largest multiple of
// len(alphabet) that fits in a byte) are discarded and read again.
func MakeRandString(r io.Reader, n int, alphabet string) (string, error) {
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errors.New("alphabet must hold between 1 and 256 characters")
	}
	if n < 0 {
		return "", errors.New("negative length")
	}
	if r == nil {
		r = rand.Reader
	}

	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, n)
	buf := make([]byte, n)

	for len(out) < n {
		chunk := buf[:n-len(out)]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return "", err
		}
		for _, b := range chunk {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
		}
	}

	return string(out), nil
}

// WipeByteArray overwrites b with zeros. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
