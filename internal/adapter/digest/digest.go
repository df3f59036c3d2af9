// Package digest presents every supported hash and checksum primitive behind one
// streaming interface.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/jzelinskie/whirlpool"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"

	"github.com/mazrean/hashfiles/internal/domain"
)

// Digest is the capability set the file engine is written against.
type Digest interface {
	// Reset returns the digest to its initial state.
	Reset()
	// Update feeds p into the running state.
	Update(p []byte)
	// Finalize returns the fixed-size digest of everything fed so far.
	Finalize() []byte
	// Size returns the number of bytes Finalize produces.
	Size() int
}

// hashDigest passes straight through to a hash.Hash implementation.
type hashDigest struct {
	h hash.Hash
}

// FromHash adapts h to the Digest interface.
func FromHash(h hash.Hash) Digest {
	return &hashDigest{h: h}
}

func (d *hashDigest) Reset() {
	d.h.Reset()
}

func (d *hashDigest) Update(p []byte) {
	// hash.Hash.Write never returns an error.
	_, _ = d.h.Write(p)
}

func (d *hashDigest) Finalize() []byte {
	return d.h.Sum(nil)
}

func (d *hashDigest) Size() int {
	return d.h.Size()
}

// New returns a fresh Digest for alg.
func New(alg domain.HashAlgorithm) (Digest, error) {
	switch alg {
	case domain.CRC32:
		return NewCRC32(), nil
	case domain.MD5:
		return FromHash(md5.New()), nil
	case domain.SHA1:
		return FromHash(sha1.New()), nil
	case domain.SHA2_224:
		return FromHash(sha256.New224()), nil
	case domain.SHA2_256:
		return FromHash(sha256.New()), nil
	case domain.SHA2_384:
		return FromHash(sha512.New384()), nil
	case domain.SHA2_512:
		return FromHash(sha512.New()), nil
	case domain.SHA3_256:
		return FromHash(sha3.New256()), nil
	case domain.SHA3_384:
		return FromHash(sha3.New384()), nil
	case domain.SHA3_512:
		return FromHash(sha3.New512()), nil
	case domain.Whirlpool:
		return FromHash(whirlpool.New()), nil
	case domain.BLAKE2s256:
		// Unkeyed construction cannot fail.
		h, err := blake2s.New256(nil)
		if err != nil {
			return nil, err
		}
		return FromHash(h), nil
	case domain.BLAKE2b512:
		h, err := blake2b.New512(nil)
		if err != nil {
			return nil, err
		}
		return FromHash(h), nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAlgorithm, alg)
}
