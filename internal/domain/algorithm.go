// Package domain provides the core model and logic for hashfiles.
// It defines algorithms, encodings, run configuration, the concurrent hash
// coordinator, and domain-level errors.
package domain

import (
	"fmt"
	"strings"
)

// HashAlgorithm identifies a digest or checksum primitive.
type HashAlgorithm int

const (
	CRC32 HashAlgorithm = iota + 1
	MD5
	SHA1
	SHA2_224
	SHA2_256
	SHA2_384
	SHA2_512
	SHA3_256
	SHA3_384
	SHA3_512
	Whirlpool
	BLAKE2s256
	BLAKE2b512
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = SHA3_256

type algorithmInfo struct {
	name    string
	size    int
	aliases []string
}

var algorithms = map[HashAlgorithm]algorithmInfo{
	CRC32:      {name: "CRC32", size: 4, aliases: []string{"CRC-32"}},
	MD5:        {name: "MD5", size: 16, aliases: []string{"MD-5"}},
	SHA1:       {name: "SHA1", size: 20, aliases: []string{"SHA-1"}},
	SHA2_224:   {name: "SHA2-224", size: 28, aliases: []string{"SHA2_224"}},
	SHA2_256:   {name: "SHA2-256", size: 32, aliases: []string{"SHA2", "SHA2_256", "SHA_256", "SHA-256"}},
	SHA2_384:   {name: "SHA2-384", size: 48, aliases: []string{"SHA2_384"}},
	SHA2_512:   {name: "SHA2-512", size: 64, aliases: []string{"SHA2_512"}},
	SHA3_256:   {name: "SHA3-256", size: 32, aliases: []string{"SHA3", "SHA3_256"}},
	SHA3_384:   {name: "SHA3-384", size: 48, aliases: []string{"SHA3_384"}},
	SHA3_512:   {name: "SHA3-512", size: 64, aliases: []string{"SHA3_512"}},
	Whirlpool:  {name: "WHIRLPOOL", size: 64},
	BLAKE2s256: {name: "BLAKE2S-256", size: 32, aliases: []string{"BLAKE2S_256"}},
	BLAKE2b512: {name: "BLAKE2B-512", size: 64, aliases: []string{"BLAKE2B_512"}},
}

// SupportedAlgorithms returns every algorithm in declaration order.
func SupportedAlgorithms() []HashAlgorithm {
	list := make([]HashAlgorithm, 0, len(algorithms))
	for a := CRC32; a <= BLAKE2b512; a++ {
		list = append(list, a)
	}
	return list
}

// String returns the canonical algorithm name.
func (a HashAlgorithm) String() string {
	if info, ok := algorithms[a]; ok {
		return info.name
	}
	return fmt.Sprintf("HashAlgorithm(%d)", int(a))
}

// DigestSize returns the output size in bytes, or 0 for an unknown algorithm.
func (a HashAlgorithm) DigestSize() int {
	return algorithms[a].size
}

// Aliases returns the alternative names accepted for the algorithm.
func (a HashAlgorithm) Aliases() []string {
	return append([]string(nil), algorithms[a].aliases...)
}

// IsValid reports whether a is one of the supported algorithms.
func (a HashAlgorithm) IsValid() bool {
	_, ok := algorithms[a]
	return ok
}

// ParseHashAlgorithm converts a user supplied name into a HashAlgorithm.
// Matching is ASCII case-insensitive and accepts the aliases of every algorithm.
// An empty name yields DefaultAlgorithm.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultAlgorithm, nil
	}

	for _, a := range SupportedAlgorithms() {
		info := algorithms[a]
		if strings.EqualFold(name, info.name) {
			return a, nil
		}
		for _, alias := range info.aliases {
			if strings.EqualFold(name, alias) {
				return a, nil
			}
		}
	}

	return 0, fmt.Errorf("%w %q. Algorithm can be: CRC32, MD5, SHA1, SHA2 / SHA2-256 / SHA-256, SHA2-224, SHA2-384, SHA2-512, SHA3 / SHA3-256, SHA3-384, SHA3-512, WHIRLPOOL, BLAKE2S-256, BLAKE2B-512. Default is %s",
		ErrInvalidAlgorithm, name, DefaultAlgorithm)
}
