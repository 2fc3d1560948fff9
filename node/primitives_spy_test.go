package node

import "github.com/not-for-prod/hdkey/primitives"

// primitivesSpy wraps the default primitives so tests can assert they were
// actually invoked, catching regressions where a higher-level helper (e.g.
// bip39.NewSeed) bypasses the pluggable primitive entirely.
type primitivesSpy struct {
	onHMAC   func()
	onPBKDF2 func()
	seed     []byte
}

func (s *primitivesSpy) toOverrides() *primitives.Overrides {
	return &primitives.Overrides{
		HMACSHA512: func(key, data []byte) ([]byte, error) {
			if s.onHMAC != nil {
				s.onHMAC()
			}
			return primitives.DefaultHMACSHA512(key, data)
		},
		PBKDF2SHA512: func(password, salt []byte, iterations, keyLength int) ([]byte, error) {
			if s.onPBKDF2 != nil {
				s.onPBKDF2()
			}
			return primitives.DefaultPBKDF2SHA512(password, salt, iterations, keyLength)
		},
	}
}
