package node

import "errors"

// Error taxonomy, per spec §7. Failures detected by this package wrap one
// of these sentinels with errors.New/fmt.Errorf("...: %w", ...) so callers
// can errors.Is against the category; an empty derivation path matches
// both ErrEmptyPath and path.ErrEmptyPath. Other errors reported by
// packages path and curve (e.g. path.ErrMalformedPath,
// curve.ErrInvalidPrivateKey) are returned as those packages' sentinels.
var (
	ErrInvalidParameters = errors.New("node: invalid parameters")
	ErrInvalidMasterKey  = errors.New("node: master key generation produced an unusable key")
	ErrInvalidPrivateKey = errors.New("node: invalid private key")
	ErrInvalidPublicKey  = errors.New("node: invalid public key")
	ErrInvalidChainCode  = errors.New("node: invalid chain code")
	ErrInvalidTweak      = errors.New("node: invalid tweak")
	ErrUnsupportedCurve  = errors.New("node: operation not supported on this curve")
	ErrEmptyPath         = errors.New("node: derivation path has no segments")
	ErrMissingPrivateKey = errors.New("node: hardened derivation requires a private key")
)
