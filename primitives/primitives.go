// Package primitives exposes the two cryptographic building blocks the
// derivation engine treats as pluggable collaborators: HMAC-SHA-512 and
// PBKDF2-SHA-512. Callers may override either with a host-provided
// implementation (e.g. a WebCrypto binding or an enclave RPC); the
// defaults use the platform's crypto/hmac and golang.org/x/crypto/pbkdf2.
package primitives

import (
	"crypto/hmac"
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// HMACSHA512Func computes HMAC-SHA-512(key, data).
type HMACSHA512Func func(key, data []byte) ([]byte, error)

// PBKDF2SHA512Func computes PBKDF2-HMAC-SHA-512(password, salt, iter, keyLen).
type PBKDF2SHA512Func func(password, salt []byte, iterations, keyLength int) ([]byte, error)

// Overrides lets a caller substitute either primitive. A nil field falls
// back to the built-in implementation. Overrides must not change the
// result of either function — only where it runs.
type Overrides struct {
	HMACSHA512   HMACSHA512Func
	PBKDF2SHA512 PBKDF2SHA512Func
}

// Resolve fills in the built-in implementations for any nil field of o,
// returning a fully-populated Overrides. A nil receiver resolves to the
// all-defaults set.
func (o *Overrides) Resolve() Overrides {
	if o == nil {
		return Overrides{HMACSHA512: DefaultHMACSHA512, PBKDF2SHA512: DefaultPBKDF2SHA512}
	}
	r := *o
	if r.HMACSHA512 == nil {
		r.HMACSHA512 = DefaultHMACSHA512
	}
	if r.PBKDF2SHA512 == nil {
		r.PBKDF2SHA512 = DefaultPBKDF2SHA512
	}
	return r
}

// DefaultHMACSHA512 is the built-in HMAC-SHA-512 implementation.
func DefaultHMACSHA512(key, data []byte) ([]byte, error) {
	mac := hmac.New(sha512.New, key)
	if _, err := mac.Write(data); err != nil {
		return nil, err
	}
	return mac.Sum(nil), nil
}

// DefaultPBKDF2SHA512 is the built-in PBKDF2-HMAC-SHA-512 implementation.
func DefaultPBKDF2SHA512(password, salt []byte, iterations, keyLength int) ([]byte, error) {
	return pbkdf2.Key(password, salt, iterations, keyLength, sha512.New), nil
}
