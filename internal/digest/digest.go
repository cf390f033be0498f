// Package digest computes content identifiers over canonical bytes.
//
// A digest is "kanon1:<algo>:<hex>", where the hash covers a domain
// separation header followed by the canonical encoding. Because the input
// is canonical, two documents that are equal as mappings get the same
// digest no matter how their keys were ordered at the source.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// header is hashed before the payload so kanon digests can never collide
// with a plain hash of the same bytes.
var header = []byte("kanon1\x00")

// Supported algorithms.
const (
	AlgoSHA256  = "sha256"
	AlgoSHA3    = "sha3-256"
	AlgoBLAKE2B = "blake2b-256"
)

// DefaultAlgo is used when the caller does not pick one.
const DefaultAlgo = AlgoSHA256

// Algos lists the supported algorithm names in display order.
func Algos() []string {
	return []string{AlgoSHA256, AlgoSHA3, AlgoBLAKE2B}
}

// Compute returns the digest of canonical bytes under the given algorithm.
func Compute(algo string, canonical []byte) (string, error) {
	h, err := newHash(algo)
	if err != nil {
		return "", err
	}
	h.Write(header)
	h.Write(canonical)
	return fmt.Sprintf("kanon1:%s:%s", algo, hex.EncodeToString(h.Sum(nil))), nil
}

func newHash(algo string) (hash.Hash, error) {
	switch algo {
	case AlgoSHA256:
		return sha256.New(), nil
	case AlgoSHA3:
		return sha3.New256(), nil
	case AlgoBLAKE2B:
		h, err := blake2b.New256(nil)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, fmt.Errorf("digest: unknown algorithm %q", algo)
	}
}
