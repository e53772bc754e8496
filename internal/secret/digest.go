// Package secret derives and verifies one-way digests of the wallet PIN.
// The plain-text PIN is never stored or logged.
package secret

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digester derives a digest of a plain-text secret. Implementations are
// selected once at startup; a stored digest records which scheme produced
// it so schemes are never mixed within one snapshot.
type Digester interface {
	// Scheme is the short identifier recorded alongside the digest.
	Scheme() string
	// Sum returns the digest of plain.
	Sum(plain string) string
}

// SHA256Digester is the standard digester: hex-encoded SHA-256.
type SHA256Digester struct{}

// Scheme implements Digester.
func (SHA256Digester) Scheme() string { return "sha256" }

// Sum implements Digester.
func (SHA256Digester) Sum(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// HexDigester is a degraded fallback for constrained environments: a plain
// reversible hex encoding, not a cryptographic hash. It exists so a snapshot
// written by such an environment still verifies consistently.
type HexDigester struct{}

// Scheme implements Digester.
func (HexDigester) Scheme() string { return "hex" }

// Sum implements Digester.
func (HexDigester) Sum(plain string) string {
	return hex.EncodeToString([]byte(plain))
}

// ForScheme returns the digester registered under the given scheme name.
func ForScheme(name string) (Digester, error) {
	switch name {
	case "", "sha256":
		return SHA256Digester{}, nil
	case "hex":
		return HexDigester{}, nil
	default:
		return nil, fmt.Errorf("unknown digest scheme %q", name)
	}
}

// Encode digests plain with d and prefixes the scheme, producing the value
// stored in the snapshot ("scheme$digest").
func Encode(d Digester, plain string) string {
	return d.Scheme() + "$" + d.Sum(plain)
}

// Verify compares plain against a stored "scheme$digest" value using the
// scheme the value was written with. A stored value produced by an unknown
// scheme, or by a different scheme than expected for bare legacy digests,
// simply fails verification.
func Verify(plain, stored string) bool {
	if stored == "" {
		return false
	}

	scheme := "sha256" // bare legacy digests predate the scheme prefix
	digest := stored
	if idx := strings.IndexByte(stored, '$'); idx >= 0 {
		scheme = stored[:idx]
		digest = stored[idx+1:]
	}

	d, err := ForScheme(scheme)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(d.Sum(plain)), []byte(digest)) == 1
}
