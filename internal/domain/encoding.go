package domain

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// OutputEncoding is the textual representation of a raw digest.
type OutputEncoding int

const (
	// EncodingUnspecified must be resolved with ResolveEncoding before hashing.
	EncodingUnspecified OutputEncoding = iota
	EncodingHex
	EncodingBase64
	EncodingBase32
	// EncodingU32 prints a 4-byte big-endian digest as a 10-digit zero-padded decimal.
	EncodingU32
)

// u32Width covers the full uint32 range (4294967295).
const u32Width = 10

var encodingNames = map[OutputEncoding]string{
	EncodingUnspecified: "Unspecified",
	EncodingHex:         "Hex",
	EncodingBase64:      "Base64",
	EncodingBase32:      "Base32",
	EncodingU32:         "U32",
}

func (e OutputEncoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("OutputEncoding(%d)", int(e))
}

// ParseOutputEncoding converts a user supplied encoding name, case-insensitively.
// An empty name yields EncodingUnspecified.
func ParseOutputEncoding(name string) (OutputEncoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return EncodingUnspecified, nil
	}
	for _, e := range []OutputEncoding{EncodingHex, EncodingBase64, EncodingBase32, EncodingU32} {
		if strings.EqualFold(name, encodingNames[e]) {
			return e, nil
		}
	}
	return EncodingUnspecified, fmt.Errorf("%w %q. Encoding can be: Hex, Base64, Base32 (U32 for CRC32). Default is Hex", ErrInvalidEncoding, name)
}

// ResolveEncoding replaces EncodingUnspecified with the default for the algorithm:
// U32 for CRC32 and Hex for everything else.
func ResolveEncoding(alg HashAlgorithm, enc OutputEncoding) OutputEncoding {
	if enc != EncodingUnspecified {
		return enc
	}
	if alg == CRC32 {
		return EncodingU32
	}
	return EncodingHex
}

// ValidatePairing enforces that CRC32 is used with U32 and U32 only with CRC32.
func ValidatePairing(alg HashAlgorithm, enc OutputEncoding) error {
	if (alg == CRC32) != (enc == EncodingU32) {
		return fmt.Errorf("%w (got %s with %s)", ErrEncodingPairing, alg, enc)
	}
	return nil
}

// EncodedHash is the final, immutable textual form of a digest.
type EncodedHash struct {
	value string
}

func (h EncodedHash) String() string {
	return h.value
}

// Encode converts a raw digest into its textual representation.
func (e OutputEncoding) Encode(raw []byte) (EncodedHash, error) {
	switch e {
	case EncodingHex:
		return EncodedHash{value: hex.EncodeToString(raw)}, nil
	case EncodingBase64:
		return EncodedHash{value: base64.StdEncoding.EncodeToString(raw)}, nil
	case EncodingBase32:
		return EncodedHash{value: base32.StdEncoding.EncodeToString(raw)}, nil
	case EncodingU32:
		if len(raw) != 4 {
			return EncodedHash{}, fmt.Errorf("%w: U32 requires a 4 byte digest, got %d bytes", ErrEncodingMismatch, len(raw))
		}
		return EncodedHash{value: fmt.Sprintf("%0*d", u32Width, binary.BigEndian.Uint32(raw))}, nil
	default:
		return EncodedHash{}, fmt.Errorf("%w: %s", ErrUnresolvedEncoding, e)
	}
}
